package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tripcal/internal/layout"
	"tripcal/internal/model"
)

// BasicAuthConfig holds HTTP Basic Auth credentials for the Web UI/API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the Web UI and API.
	Listen string `yaml:"listen" json:"listen"`

	// Itinerary is where the item list is loaded from: a local JSON file
	// path or an http(s) URL.
	Itinerary string `yaml:"itinerary" json:"itinerary"`

	// CacheDir backs the HTTP itinerary cache and the rendered preview.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	// HomeTimezone is the viewer's IANA zone, used for the countdown
	// target and the current date override. Item times never use it.
	HomeTimezone string `yaml:"home_timezone" json:"home_timezone"`

	// TripStart / TripEnd bound the trip as "2006-01-02" dates. Week
	// navigation is clamped to the weeks these days touch.
	TripStart string `yaml:"trip_start" json:"trip_start"`
	TripEnd   string `yaml:"trip_end" json:"trip_end"`

	// Grid is the visible hour range and vertical scale of the time grid.
	Grid layout.Grid `yaml:"grid" json:"grid"`

	// RefreshCron is a cron-style schedule (e.g. "*/15 * * * *") for
	// periodic preview recapture. Empty disables the capture loop.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// ZoneLabels overrides or extends the built-in zone label table.
	ZoneLabels map[string]string `yaml:"zone_labels,omitempty" json:"zone_labels,omitempty"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all
	// endpoints except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:       "127.0.0.1:8080",
		Itinerary:    "./events.json",
		CacheDir:     "./cache",
		HomeTimezone: "Europe/Madrid",
		TripStart:    "2026-08-03",
		TripEnd:      "2026-08-16",
		Grid:         layout.DefaultGrid(),
		RefreshCron:  "*/15 * * * *",
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.Itinerary == "" {
		c.Itinerary = def.Itinerary
	}
	if c.CacheDir == "" {
		c.CacheDir = def.CacheDir
	}
	if c.HomeTimezone == "" {
		c.HomeTimezone = def.HomeTimezone
	}
	if c.TripStart == "" {
		c.TripStart = def.TripStart
	}
	if c.TripEnd == "" {
		c.TripEnd = def.TripEnd
	}
	c.Grid.Normalize()
}

// TripRange parses the configured trip bounds. A trip end before the
// trip start is rejected here rather than surfacing as a window with no
// valid weeks.
func (c *Config) TripRange() (start, end model.Day, err error) {
	start, err = model.ParseDay(c.TripStart)
	if err != nil {
		return model.Day{}, model.Day{}, fmt.Errorf("trip_start: %w", err)
	}
	end, err = model.ParseDay(c.TripEnd)
	if err != nil {
		return model.Day{}, model.Day{}, fmt.Errorf("trip_end: %w", err)
	}
	if end.Before(start) {
		return model.Day{}, model.Day{}, fmt.Errorf("trip_end %s precedes trip_start %s", end, start)
	}
	return start, end, nil
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     perms and returned.
//   - If the file exists, it is unmarshalled and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically (temp file + rename) with
// 0600 permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tripcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
