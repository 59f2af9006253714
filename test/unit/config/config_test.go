package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/openrtl/rxstats/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg.TransmissionWindow != 2.0 {
		t.Errorf("TransmissionWindow = %v, want 2.0", cfg.TransmissionWindow)
	}
	if !cfg.EnableSNR || !cfg.EnableGap || !cfg.EnableFreq || !cfg.EnablePPT {
		t.Errorf("all categories should default enabled")
	}
	if cfg.IncludeTPMS {
		t.Errorf("TPMS should default excluded")
	}
	if cfg.MQTTTopic != "rtl_433/+/events" {
		t.Errorf("MQTTTopic = %q", cfg.MQTTTopic)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `window: 1.5
freq: false
noise_floor: 5
include_tpms: true
snapshot_interval: 10s
export_path: /tmp/runs.db
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	if err := cfg.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.TransmissionWindow != 1.5 {
		t.Errorf("TransmissionWindow = %v, want 1.5", cfg.TransmissionWindow)
	}
	if cfg.EnableFreq {
		t.Errorf("EnableFreq = true, want false from file")
	}
	if !cfg.EnableSNR {
		t.Errorf("EnableSNR flipped without being set in file")
	}
	if cfg.NoiseFloor != 5 {
		t.Errorf("NoiseFloor = %d, want 5", cfg.NoiseFloor)
	}
	if !cfg.IncludeTPMS {
		t.Errorf("IncludeTPMS = false, want true from file")
	}
	if cfg.SnapshotInterval != 10*time.Second {
		t.Errorf("SnapshotInterval = %v, want 10s", cfg.SnapshotInterval)
	}
	if cfg.ExportPath != "/tmp/runs.db" {
		t.Errorf("ExportPath = %q", cfg.ExportPath)
	}
}

func TestLoadFromFile_MissingExplicitPath(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("explicit missing config file did not error")
	}
}

func TestLoadFromFile_MissingDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := config.DefaultConfig()
	if err := cfg.LoadFromFile(""); err != nil {
		t.Errorf("missing default config file errored: %v", err)
	}
}

func TestLoadFromFile_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("window: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	if err := cfg.LoadFromFile(path); err == nil {
		t.Errorf("bad YAML accepted")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RXSTATS_WINDOW", "3.5")
	t.Setenv("RXSTATS_NOISE_FLOOR", "20")
	t.Setenv("RXSTATS_PPT", "false")
	t.Setenv("RXSTATS_INCLUDE_TPMS", "1")
	t.Setenv("RXSTATS_MQTT_BROKER", "tcp://broker:1883")

	cfg := config.DefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.TransmissionWindow != 3.5 {
		t.Errorf("TransmissionWindow = %v, want 3.5", cfg.TransmissionWindow)
	}
	if cfg.NoiseFloor != 20 {
		t.Errorf("NoiseFloor = %d, want 20", cfg.NoiseFloor)
	}
	if cfg.EnablePPT {
		t.Errorf("EnablePPT = true, want false from env")
	}
	if !cfg.IncludeTPMS {
		t.Errorf("IncludeTPMS = false, want true from env")
	}
	if cfg.MQTTBroker != "tcp://broker:1883" {
		t.Errorf("MQTTBroker = %q", cfg.MQTTBroker)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("RXSTATS_WINDOW", "soon")
	cfg := config.DefaultConfig()
	if err := cfg.LoadFromEnv(); err == nil {
		t.Errorf("invalid RXSTATS_WINDOW accepted")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "negative window", mutate: func(c *config.Config) { c.TransmissionWindow = -1 }},
		{name: "negative noise floor", mutate: func(c *config.Config) { c.NoiseFloor = -2 }},
		{name: "zero snapshot interval", mutate: func(c *config.Config) { c.SnapshotInterval = 0 }},
		{name: "ws and mqtt together", mutate: func(c *config.Config) {
			c.FollowURL = "ws://x/ws"
			c.MQTTBroker = "tcp://y:1883"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate accepted %s", tt.name)
			}
		})
	}
}

func TestStatsOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TransmissionWindow = 7
	cfg.EnableGap = false

	opts := cfg.StatsOptions()
	if opts.Window != 7 {
		t.Errorf("Window = %v, want 7", opts.Window)
	}
	if opts.Gap {
		t.Errorf("Gap = true, want false")
	}
	if !opts.SNR || !opts.Freq || !opts.PPT {
		t.Errorf("other categories should stay enabled")
	}
}
