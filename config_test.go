package intervalreload

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigLoad(t *testing.T) {
	cfg, err := NewConfigFromFile("config.example.yml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server != "ntp.example.org" {
		t.Error(cfg)
		data, err := os.ReadFile("config.example.yml")
		t.Error(string(data), err)
	}
	if cfg.Timeout() != 3*time.Second {
		t.Error(cfg)
	}
	if cfg.Interval() != 2*time.Second {
		t.Error(cfg)
	}
	if cfg.Metric != "127.0.0.1:9123" || cfg.AutoStart {
		t.Error(cfg)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Error(loc, err)
	}
}

func TestConfigDefaultsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yml")
	if err := os.WriteFile(path, []byte("zone: Local\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewConfigFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultConfig()
	if *cfg != *def {
		t.Errorf("expecting=%+v got=%+v", def, cfg)
	}
	if cfg.Server != "time.google.com" || cfg.TimeoutMs != 5000 {
		t.Error(cfg)
	}
}

func TestConfigInvalid(t *testing.T) {
	tt := []struct {
		name string
		body string
	}{
		{"timeout", "timeout_ms: 0\n"},
		{"interval", "interval_ms: -1\n"},
		{"source", "source: gps\n"},
		{"server", "server: \"\"\n"},
		{"zone", "zone: Nowhere/Atlantis\n"},
		{"yaml", "server: [\n"},
	}
	for _, g := range tt {
		path := filepath.Join(t.TempDir(), g.name+".yml")
		if err := os.WriteFile(path, []byte(g.body), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := NewConfigFromFile(path); err == nil {
			t.Errorf("%s: expecting error got nil", g.name)
		}
	}
}

func TestConfigMissingFile(t *testing.T) {
	if _, err := NewConfigFromFile(filepath.Join(t.TempDir(), "nope.yml")); !os.IsNotExist(err) {
		t.Errorf("expecting not exist got=%v", err)
	}
}

func TestConfigLocationUnknown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Zone = "Nowhere/Atlantis"
	if loc, err := cfg.Location(); err == nil {
		t.Errorf("expecting error got=%v", loc)
	}
}
