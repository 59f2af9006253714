package catalog

import "strings"

// DeviceKey builds the composite identity for a packet: model, channel,
// and id joined with "/". Trailing empty parts are dropped so a device
// without channel/id keys as just its model, while an id-only device
// keeps the empty channel slot ("model//id") to stay distinct from a
// channel-only one.
func DeviceKey(model, channel, id string) string {
	parts := []string{model, channel, id}
	n := len(parts)
	for n > 1 && parts[n-1] == "" {
		n--
	}
	return strings.Join(parts[:n], "/")
}
