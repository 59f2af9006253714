package follow

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/eclipse/paho.golang/paho"
	"github.com/google/uuid"

	"github.com/openrtl/rxstats/internal/logging"
	errs "github.com/openrtl/rxstats/pkg/errors"
)

const mqttKeepAlive = 30 // seconds

// runMQTT subscribes to an rtl_433 events topic and ingests every
// publish until the context is cancelled.
func runMQTT(ctx context.Context, s *session, broker, topic string) error {
	addr := strings.TrimPrefix(broker, "tcp://")
	if !strings.Contains(addr, ":") {
		addr += ":1883"
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errs.ErrInputFailed(broker, err)
	}

	client := paho.NewClient(paho.ClientConfig{
		Conn: conn,
		OnPublishReceived: []func(paho.PublishReceived) (bool, error){
			func(pr paho.PublishReceived) (bool, error) {
				s.handleLine(pr.Packet.Payload)
				return true, nil
			},
		},
	})

	connack, err := client.Connect(ctx, &paho.Connect{
		ClientID:   "rxstats-" + uuid.NewString()[:8],
		KeepAlive:  mqttKeepAlive,
		CleanStart: true,
	})
	if err != nil {
		return errs.ErrInputFailed(broker, err)
	}
	if connack.ReasonCode != 0 {
		return errs.ErrInputFailed(broker,
			fmt.Errorf("connack reason code %d", connack.ReasonCode))
	}
	s.log.Info("connected",
		logging.Field{Key: "broker", Value: broker},
		logging.Field{Key: "topic", Value: topic})

	if _, err := client.Subscribe(ctx, &paho.Subscribe{
		Subscriptions: []paho.SubscribeOptions{{Topic: topic, QoS: 0}},
	}); err != nil {
		return errs.ErrInputFailed(broker, err)
	}

	<-ctx.Done()

	if err := client.Disconnect(&paho.Disconnect{ReasonCode: 0}); err != nil {
		s.log.Debug("disconnect", logging.Field{Key: "error", Value: err})
	}
	return ctx.Err()
}
