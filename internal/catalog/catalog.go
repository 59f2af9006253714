// Package catalog maintains per-device statistics over a stream of radio
// packets: a device map keyed by model/channel/id plus the transmission
// segmentation state machine that decides, packet by packet, whether a
// record extends the open transmission or starts a new one.
//
// The catalog is strictly single-writer. Ingestion is sequential by
// construction (one pass over the stream) and segmentation state is
// partitioned per device, so no locking lives here; concurrent callers
// such as live followers synchronize outside.
package catalog

import (
	"sort"

	"github.com/openrtl/rxstats/pkg/types"
)

type Catalog struct {
	opts    Options
	entries map[string]*Record

	totalPackets int64
	dedupedTx    int64

	hasTime      bool
	firstTime    float64
	lastTime     float64
	firstDisplay string
	lastDisplay  string
}

// New creates an empty catalog with the given tracking options.
func New(opts Options) *Catalog {
	return &Catalog{
		opts:    opts,
		entries: make(map[string]*Record),
	}
}

// Ingest routes one packet to its device record, creating the record on
// first sight. Callers must filter out packets without a model and
// unwanted TPMS records before calling; the catalog counts everything it
// is given.
func (c *Catalog) Ingest(p types.Packet) Events {
	key := DeviceKey(p.Model, p.Channel, p.ID)

	var ev Events
	rec, ok := c.entries[key]
	if !ok {
		c.entries[key] = newRecord(p, c.opts)
		ev.IsNewDevice = true
	} else {
		ev = rec.update(p, c.opts)
	}

	c.totalPackets++
	if !ev.IsDuplicate {
		c.dedupedTx++
	}

	if !c.hasTime || p.Time < c.firstTime {
		c.firstTime = p.Time
		c.firstDisplay = p.TimeDisplay
	}
	if !c.hasTime || p.Time > c.lastTime {
		c.lastTime = p.Time
		c.lastDisplay = p.TimeDisplay
	}
	c.hasTime = true

	return ev
}

// TotalPackets returns the number of packets ingested.
func (c *Catalog) TotalPackets() int64 { return c.totalPackets }

// DedupedTransmissions returns the number of packets classified as
// transmission starts. Always <= TotalPackets.
func (c *Catalog) DedupedTransmissions() int64 { return c.dedupedTx }

// Devices returns the number of distinct device keys seen.
func (c *Catalog) Devices() int { return len(c.entries) }

// TimeSpan returns the earliest and latest packet times seen, with their
// display forms. ok is false before the first packet.
func (c *Catalog) TimeSpan() (first, last float64, firstDisplay, lastDisplay string, ok bool) {
	return c.firstTime, c.lastTime, c.firstDisplay, c.lastDisplay, c.hasTime
}

// Lookup returns the record for a device key, if present.
func (c *Catalog) Lookup(key string) (*Record, bool) {
	rec, ok := c.entries[key]
	return rec, ok
}

// Rows snapshots every device with at least minPackets packets into report
// rows, sorted by device key.
func (c *Catalog) Rows(minPackets int) []types.DeviceStats {
	keys := make([]string, 0, len(c.entries))
	for key, rec := range c.entries {
		if rec.packets >= int64(minPackets) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	rows := make([]types.DeviceStats, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, c.entries[key].Stats(key))
	}
	return rows
}
