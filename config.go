package intervalreload

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

const (
	SourceSNTP  = "sntp"
	SourceLocal = "local"
)

var zoneAliases = map[string]string{
	"JST": "Asia/Tokyo",
}

type Config struct {
	Server     string `yaml:"server"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	IntervalMs int    `yaml:"interval_ms"`
	Zone       string `yaml:"zone"`
	Source     string `yaml:"source"`
	Metric     string `yaml:"metric"`
	AutoStart  bool   `yaml:"autostart"`
}

func DefaultConfig() *Config {
	return &Config{
		Server:     DefaultServer,
		TimeoutMs:  int(DefaultTimeout / time.Millisecond),
		IntervalMs: int(DefaultInterval / time.Millisecond),
		Zone:       "Local",
		Source:     SourceSNTP,
		AutoStart:  true,
	}
}

// NewConfigFromFile reads a yaml config, keys missing from the file keep
// their DefaultConfig values.
func NewConfigFromFile(path string) (cfg *Config, err error) {
	p, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg = DefaultConfig()
	if err = yaml.Unmarshal(p, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return
}

func (c *Config) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("empty server")
	}
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms=%d must be positive", c.TimeoutMs)
	}
	if c.IntervalMs <= 0 {
		return fmt.Errorf("interval_ms=%d must be positive", c.IntervalMs)
	}
	switch c.Source {
	case SourceSNTP, SourceLocal:
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Timeout() time.Duration {
	return millisDuration(int64(c.TimeoutMs))
}

func (c *Config) Interval() time.Duration {
	return millisDuration(int64(c.IntervalMs))
}

// Location resolves Zone. Empty and "Local" mean the system zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Zone {
	case "", "Local":
		return time.Local, nil
	}
	name := c.Zone
	if alias, ok := zoneAliases[name]; ok {
		name = alias
	}
	return time.LoadLocation(name)
}
