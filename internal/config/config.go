package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/openrtl/rxstats/internal/catalog"
)

// Config carries every knob for a run, threaded explicitly into the
// pipeline. Never global.
type Config struct {
	// Segmentation and category selection.
	TransmissionWindow float64
	EnableSNR          bool
	EnableGap          bool
	EnableFreq         bool
	EnablePPT          bool

	// Reporting.
	NoiseFloor  int
	IncludeTPMS bool
	JSONOutput  bool
	NoColor     bool
	NoProgress  bool

	// Optional SQLite export; empty path disables.
	ExportPath string

	// Live following.
	FollowURL        string
	MQTTBroker       string
	MQTTTopic        string
	SnapshotInterval time.Duration

	LogLevel string
}

func DefaultConfig() *Config {
	return &Config{
		TransmissionWindow: 2.0,
		EnableSNR:          true,
		EnableGap:          true,
		EnableFreq:         true,
		EnablePPT:          true,
		NoiseFloor:         1,
		IncludeTPMS:        false,
		MQTTTopic:          "rtl_433/+/events",
		SnapshotInterval:   30 * time.Second,
		LogLevel:           "info",
	}
}

// StatsOptions extracts the subset that parameterizes the catalog.
func (c *Config) StatsOptions() catalog.Options {
	return catalog.Options{
		Window: c.TransmissionWindow,
		SNR:    c.EnableSNR,
		Gap:    c.EnableGap,
		Freq:   c.EnableFreq,
		PPT:    c.EnablePPT,
	}
}

// configFile mirrors Config for YAML loading. Pointer fields distinguish
// "absent" from a real false/zero so file values only override what they
// actually set.
type configFile struct {
	Window      *float64 `yaml:"window,omitempty"`
	SNR         *bool    `yaml:"snr,omitempty"`
	Gap         *bool    `yaml:"gap,omitempty"`
	Freq        *bool    `yaml:"freq,omitempty"`
	PPT         *bool    `yaml:"ppt,omitempty"`
	NoiseFloor  *int     `yaml:"noise_floor,omitempty"`
	IncludeTPMS *bool    `yaml:"include_tpms,omitempty"`
	JSON        *bool    `yaml:"json,omitempty"`
	NoColor     *bool    `yaml:"no_color,omitempty"`
	NoProgress  *bool    `yaml:"no_progress,omitempty"`
	ExportPath  string   `yaml:"export_path,omitempty"`
	FollowURL   string   `yaml:"follow_url,omitempty"`
	MQTTBroker  string   `yaml:"mqtt_broker,omitempty"`
	MQTTTopic   string   `yaml:"mqtt_topic,omitempty"`
	Snapshot    string   `yaml:"snapshot_interval,omitempty"`
	LogLevel    string   `yaml:"log_level,omitempty"`
}

// DefaultPath returns the XDG config file location.
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "rxstats", "config.yaml")
}

// LoadFromFile merges settings from a YAML file. With path == "" the
// default location is tried and a missing file is not an error; an
// explicit path must exist.
func (c *Config) LoadFromFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if f.Window != nil {
		c.TransmissionWindow = *f.Window
	}
	if f.SNR != nil {
		c.EnableSNR = *f.SNR
	}
	if f.Gap != nil {
		c.EnableGap = *f.Gap
	}
	if f.Freq != nil {
		c.EnableFreq = *f.Freq
	}
	if f.PPT != nil {
		c.EnablePPT = *f.PPT
	}
	if f.NoiseFloor != nil {
		c.NoiseFloor = *f.NoiseFloor
	}
	if f.IncludeTPMS != nil {
		c.IncludeTPMS = *f.IncludeTPMS
	}
	if f.JSON != nil {
		c.JSONOutput = *f.JSON
	}
	if f.NoColor != nil {
		c.NoColor = *f.NoColor
	}
	if f.NoProgress != nil {
		c.NoProgress = *f.NoProgress
	}
	if f.ExportPath != "" {
		c.ExportPath = f.ExportPath
	}
	if f.FollowURL != "" {
		c.FollowURL = f.FollowURL
	}
	if f.MQTTBroker != "" {
		c.MQTTBroker = f.MQTTBroker
	}
	if f.MQTTTopic != "" {
		c.MQTTTopic = f.MQTTTopic
	}
	if f.Snapshot != "" {
		d, err := time.ParseDuration(f.Snapshot)
		if err != nil {
			return fmt.Errorf("invalid snapshot_interval %q: %w", f.Snapshot, err)
		}
		c.SnapshotInterval = d
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	return nil
}

// LoadFromEnv merges RXSTATS_* environment overrides.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("RXSTATS_WINDOW"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RXSTATS_WINDOW %q: %w", v, err)
		}
		c.TransmissionWindow = f
	}
	if v := os.Getenv("RXSTATS_NOISE_FLOOR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RXSTATS_NOISE_FLOOR %q: %w", v, err)
		}
		c.NoiseFloor = n
	}
	for _, b := range []struct {
		env string
		dst *bool
	}{
		{"RXSTATS_SNR", &c.EnableSNR},
		{"RXSTATS_GAP", &c.EnableGap},
		{"RXSTATS_FREQ", &c.EnableFreq},
		{"RXSTATS_PPT", &c.EnablePPT},
		{"RXSTATS_INCLUDE_TPMS", &c.IncludeTPMS},
		{"RXSTATS_JSON", &c.JSONOutput},
		{"RXSTATS_NO_COLOR", &c.NoColor},
		{"RXSTATS_NO_PROGRESS", &c.NoProgress},
	} {
		if v := os.Getenv(b.env); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", b.env, v, err)
			}
			*b.dst = parsed
		}
	}
	if v := os.Getenv("RXSTATS_EXPORT"); v != "" {
		c.ExportPath = v
	}
	if v := os.Getenv("RXSTATS_MQTT_BROKER"); v != "" {
		c.MQTTBroker = v
	}
	if v := os.Getenv("RXSTATS_MQTT_TOPIC"); v != "" {
		c.MQTTTopic = v
	}
	if v := os.Getenv("RXSTATS_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.TransmissionWindow < 0 {
		return fmt.Errorf("transmission window must be >= 0, got %v", c.TransmissionWindow)
	}
	if c.NoiseFloor < 0 {
		return fmt.Errorf("noise floor must be >= 0, got %d", c.NoiseFloor)
	}
	if c.SnapshotInterval <= 0 {
		return fmt.Errorf("snapshot interval must be positive, got %v", c.SnapshotInterval)
	}
	if c.FollowURL != "" && c.MQTTBroker != "" {
		return fmt.Errorf("follow URL and MQTT broker are mutually exclusive")
	}
	return nil
}
