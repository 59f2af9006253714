package record

import (
	"strconv"
	"time"

	"github.com/relvacode/iso8601"
)

// BadTimeError reports a timestamp token that is neither an ISO-8601-like
// date-time nor a bare epoch-seconds float. The whole run aborts on it:
// every downstream ordering and bucketing decision depends on a valid
// epoch value, so partial results would be misleading.
type BadTimeError struct {
	Token string
	Err   error
}

func (e *BadTimeError) Error() string { return "unparseable timestamp " + strconv.Quote(e.Token) }

func (e *BadTimeError) Unwrap() error { return e.Err }

// NormalizeTime converts a timestamp token to epoch seconds plus a display
// form. Accepted inputs are a bare floating epoch-seconds token
// ("1681294530.518930") or an ISO-8601-like date-time; rtl_433's default
// "2006-01-02 15:04:05" space separator is normalized to "T" before
// parsing. Date-times without a zone are taken as UTC.
func NormalizeTime(token string) (float64, string, error) {
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f, epochDisplay(f), nil
	}

	iso := token
	if len(iso) > 10 && iso[10] == ' ' {
		iso = iso[:10] + "T" + iso[11:]
	}
	t, err := iso8601.ParseString(iso)
	if err != nil {
		return 0, "", &BadTimeError{Token: token, Err: err}
	}
	return float64(t.UnixNano()) / 1e9, token, nil
}

func epochDisplay(epoch float64) string {
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC().Format("2006-01-02 15:04:05")
}
