package sqlite

import "fmt"

const (
	defaultBusyTimeout = 5000
	defaultDBFile      = "journal.db"
	defaultMaxEntries  = 10000
)

// Config holds the SQLite journal module configuration.
type Config struct {
	// Path is the database file path. Defaults to {DataDir}/journal.db.
	Path string `yaml:"path"`

	// WAL enables WAL journal mode for concurrent reads. Defaults to true.
	WAL *bool `yaml:"wal"`

	// BusyTimeout is the milliseconds to wait on a busy lock. Defaults to 5000.
	BusyTimeout int `yaml:"busy_timeout"`

	// MaxEntries bounds the journal size; the oldest entries are pruned
	// past it. Zero keeps everything. Defaults to 10000.
	MaxEntries *int `yaml:"max_entries"`
}

func (c *Config) defaults() {
	if c.WAL == nil {
		t := true
		c.WAL = &t
	}
	if c.BusyTimeout == 0 {
		c.BusyTimeout = defaultBusyTimeout
	}
	if c.MaxEntries == nil {
		n := defaultMaxEntries
		c.MaxEntries = &n
	}
}

func (c *Config) walEnabled() bool {
	return c.WAL == nil || *c.WAL
}

func (c *Config) maxEntries() int {
	if c.MaxEntries == nil {
		return defaultMaxEntries
	}
	return *c.MaxEntries
}

func (c *Config) validate() error {
	if c.BusyTimeout < 0 {
		return fmt.Errorf("sqlite: busy_timeout must be non-negative, got %d", c.BusyTimeout)
	}
	if c.maxEntries() < 0 {
		return fmt.Errorf("sqlite: max_entries must be non-negative, got %d", c.maxEntries())
	}
	return nil
}
