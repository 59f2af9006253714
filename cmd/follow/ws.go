package follow

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"github.com/openrtl/rxstats/internal/logging"
	errs "github.com/openrtl/rxstats/pkg/errors"
)

// runWS streams events from an rtl_433 HTTP server's WebSocket endpoint
// until the context is cancelled or the connection drops.
func runWS(ctx context.Context, s *session, url string) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return errs.ErrInputFailed(url, err)
	}
	defer conn.Close()
	s.log.Info("connected", logging.Field{Key: "url", Value: url})

	// Unblock ReadMessage on cancellation.
	go func() {
		<-ctx.Done()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errs.ErrInputFailed(url, err)
		}
		s.handleLine(msg)
	}
}
