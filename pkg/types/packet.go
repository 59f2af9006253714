package types

// Packet is one normalized radio event record as emitted by an rtl_433
// style receiver, after JSON parsing and time normalization.
type Packet struct {
	Model   string
	Channel string
	ID      string

	// Time is epoch seconds; TimeDisplay is the human form of the same
	// instant (the original token for date-time input).
	Time        float64
	TimeDisplay string

	SNR  float64
	Freq float64

	// Battery and Status hold the raw JSON tokens ("" when absent) so
	// change detection works by plain equality for any source type.
	Battery string
	Status  string

	// Type is the rtl_433 device class tag, e.g. "TPMS".
	Type string
}

// IsTPMS reports whether the packet came from a tire pressure sensor.
func (p Packet) IsTPMS() bool {
	return p.Type == "TPMS"
}
