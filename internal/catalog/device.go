package catalog

import (
	"github.com/openrtl/rxstats/internal/stats"
	"github.com/openrtl/rxstats/pkg/types"
)

// Options selects which statistic series are tracked and how packets are
// segmented into transmissions. It is passed in explicitly at catalog
// construction; there is no ambient/global configuration.
type Options struct {
	// Window is the transmission window in seconds: a packet arriving
	// less than Window after the current transmission started is a
	// duplicate of that transmission.
	Window float64

	SNR  bool
	Gap  bool
	Freq bool
	PPT  bool
}

// DefaultOptions tracks all four series with the standard 2 s window.
func DefaultOptions() Options {
	return Options{Window: 2.0, SNR: true, Gap: true, Freq: true, PPT: true}
}

// Record holds everything the catalog knows about one physical device:
// counters, the segmentation state, last-seen battery/status tokens, and
// an accumulator per enabled series. Accumulators for gap and PPT stay
// nil until the first transmission boundary closes, since neither sample
// exists before a second transmission starts.
type Record struct {
	packets       int64
	transmissions int64

	// pending counts packets absorbed into the currently open
	// transmission; it becomes the PPT sample when that transmission
	// closes.
	pending int64

	lastPacketTime float64
	lastTxTime     float64

	battery string
	status  string

	snr  *stats.Accumulator
	gap  *stats.Accumulator
	freq *stats.Accumulator
	ppt  *stats.Accumulator
}

// Events reports what one ingested packet did: whether it was folded into
// the open transmission, whether battery/status flipped, and whether it
// created the device entry. Pure observations for the caller to log; the
// catalog does not retain them.
type Events struct {
	IsNewDevice    bool
	IsDuplicate    bool
	BatteryChanged bool
	StatusChanged  bool
}

func newRecord(p types.Packet, o Options) *Record {
	r := &Record{
		packets:        1,
		transmissions:  1,
		pending:        1,
		lastPacketTime: p.Time,
		lastTxTime:     p.Time,
		battery:        p.Battery,
		status:         p.Status,
	}
	if o.SNR {
		r.snr = stats.New(p.SNR)
	}
	if o.Freq {
		r.freq = stats.New(p.Freq)
	}
	return r
}

// update applies one packet to the segmentation state machine.
//
// SNR and frequency take a sample from every packet: duplicates repeat the
// same logical transmission but each reception is an independent
// signal-quality observation. Gap and PPT sample only at transmission
// boundaries, and the PPT sample is the packet count of the transmission
// that just closed, not the one that just opened.
func (r *Record) update(p types.Packet, o Options) Events {
	var ev Events

	r.packets++
	r.lastPacketTime = p.Time

	ev.IsDuplicate = p.Time < r.lastTxTime+o.Window

	if o.SNR {
		r.snr.Add(p.SNR)
	}

	if o.Gap && !ev.IsDuplicate {
		gap := p.Time - r.lastTxTime
		if r.gap == nil {
			r.gap = stats.New(gap)
		} else {
			r.gap.Add(gap)
		}
	}
	if !ev.IsDuplicate {
		r.lastTxTime = p.Time
		r.transmissions++
	}

	if o.Freq {
		r.freq.Add(p.Freq)
	}

	if o.PPT {
		if !ev.IsDuplicate {
			if r.ppt == nil {
				r.ppt = stats.New(float64(r.pending))
			} else {
				r.ppt.Add(float64(r.pending))
			}
			r.pending = 0
		}
		r.pending++
	}

	if p.Battery != r.battery {
		ev.BatteryChanged = true
		r.battery = p.Battery
	}
	if p.Status != r.status {
		ev.StatusChanged = true
		r.status = p.Status
	}
	return ev
}

// Packets returns the number of packets seen for this device.
func (r *Record) Packets() int64 { return r.packets }

// Transmissions returns the number of deduplicated transmissions.
func (r *Record) Transmissions() int64 { return r.transmissions }

// Stats snapshots the record into a report row. Disabled or not-yet-sampled
// series come out nil.
func (r *Record) Stats(key string) types.DeviceStats {
	ds := types.DeviceStats{
		Device:        key,
		Packets:       r.packets,
		Transmissions: r.transmissions,
	}
	if r.snr != nil {
		ds.SNR = r.snr.Summary()
	}
	if r.gap != nil {
		ds.Gap = r.gap.Summary()
	}
	if r.freq != nil {
		ds.Freq = r.freq.Summary()
	}
	if r.ppt != nil {
		ds.PPT = r.ppt.Summary()
	}
	return ds
}
