package types

// Summary is the reportable state of one statistic series.
type Summary struct {
	Count  int64   `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// DeviceStats is the per-device output row. A nil summary means the
// category is disabled or has not produced a sample yet.
type DeviceStats struct {
	Device        string   `json:"device"`
	Packets       int64    `json:"packets"`
	Transmissions int64    `json:"transmissions"`
	SNR           *Summary `json:"snr,omitempty"`
	Gap           *Summary `json:"gap,omitempty"`
	Freq          *Summary `json:"freq,omitempty"`
	PPT           *Summary `json:"ppt,omitempty"`
	Grade         string   `json:"grade,omitempty"`
}

// RunStats is the whole-run report: global counters plus one DeviceStats
// per device that cleared the noise floor, sorted by device key.
type RunStats struct {
	Sources              []string      `json:"sources"`
	TotalPackets         int64         `json:"total_packets"`
	DedupedTransmissions int64         `json:"deduped_transmissions"`
	Devices              int           `json:"devices"`
	SkippedNoModel       int64         `json:"skipped_no_model"`
	SkippedTPMS          int64         `json:"skipped_tpms"`
	ParseErrors          int64         `json:"parse_errors,omitempty"`
	FirstTime            float64       `json:"first_time"`
	LastTime             float64       `json:"last_time"`
	FirstTimeDisplay     string        `json:"first_time_display"`
	LastTimeDisplay      string        `json:"last_time_display"`
	Rows                 []DeviceStats `json:"device_stats"`
}
