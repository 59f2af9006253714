// Package record parses rtl_433 JSON event lines into normalized packets.
// Field extraction uses buger/jsonparser so the hot ingest path never
// allocates a full map per line.
package record

import (
	"errors"
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/openrtl/rxstats/pkg/types"
)

// ErrNoModel marks a record without a device-identifying model field.
// Such records are skipped silently upstream of the catalog; they are a
// domain-filtering decision, not an error.
var ErrNoModel = errors.New("record has no model field")

// Parse converts one JSON event line into a Packet. Model, channel, and
// id accept both string and number values (numbers are stringified, as
// rtl_433 emits either depending on the decoder). snr and freq default to
// 0 when absent. battery_ok and status are kept as raw tokens so change
// detection compares any source type by equality.
func Parse(line []byte) (types.Packet, error) {
	var p types.Packet

	model, err := identityField(line, "model")
	if err != nil {
		return p, err
	}
	if model == "" {
		return p, ErrNoModel
	}
	p.Model = model

	if p.Channel, err = identityField(line, "channel"); err != nil {
		return p, err
	}
	if p.ID, err = identityField(line, "id"); err != nil {
		return p, err
	}

	if p.Time, p.TimeDisplay, err = timeField(line); err != nil {
		return p, err
	}

	if p.SNR, err = floatField(line, "snr"); err != nil {
		return p, err
	}
	if p.Freq, err = floatField(line, "freq"); err != nil {
		return p, err
	}

	p.Battery = rawToken(line, "battery_ok")
	p.Status = rawToken(line, "status")

	if t, err := jsonparser.GetString(line, "type"); err == nil {
		p.Type = t
	}

	return p, nil
}

// identityField reads a key that may be a string or a number and returns
// its string form ("" when absent).
func identityField(line []byte, key string) (string, error) {
	v, dt, _, err := jsonparser.Get(line, key)
	switch dt {
	case jsonparser.NotExist:
		if err != nil && !errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return "", fmt.Errorf("field %q: %w", key, err)
		}
		return "", nil
	case jsonparser.String:
		s, perr := jsonparser.ParseString(v)
		if perr != nil {
			return "", fmt.Errorf("field %q: %w", key, perr)
		}
		return s, nil
	case jsonparser.Number:
		return string(v), nil
	default:
		return "", fmt.Errorf("field %q: unexpected type %s", key, dt)
	}
}

// timeField reads the required timestamp, which may be a date-time string,
// an epoch string, or a bare JSON number.
func timeField(line []byte) (float64, string, error) {
	v, dt, _, err := jsonparser.Get(line, "time")
	switch dt {
	case jsonparser.NotExist:
		if err != nil && !errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return 0, "", fmt.Errorf("field \"time\": %w", err)
		}
		return 0, "", errors.New("record has no time field")
	case jsonparser.String:
		token, perr := jsonparser.ParseString(v)
		if perr != nil {
			return 0, "", fmt.Errorf("field \"time\": %w", perr)
		}
		return NormalizeTime(token)
	case jsonparser.Number:
		return NormalizeTime(string(v))
	default:
		return 0, "", fmt.Errorf("field \"time\": unexpected type %s", dt)
	}
}

func floatField(line []byte, key string) (float64, error) {
	f, err := jsonparser.GetFloat(line, key)
	if err != nil {
		if errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return 0, nil
		}
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return f, nil
}

// rawToken returns the raw JSON token for a key ("" when absent). Battery
// and status values vary in type across decoders (0/1, bools, strings);
// the raw token form makes equality comparison uniform.
func rawToken(line []byte, key string) string {
	v, dt, _, _ := jsonparser.Get(line, key)
	if dt == jsonparser.NotExist || dt == jsonparser.Null {
		return ""
	}
	return string(v)
}
