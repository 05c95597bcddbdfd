package telegram

import (
	"fmt"
	"net/url"
	"regexp"
	"time"
)

// tokenPattern matches the Telegram bot token format: <digits>:<alphanum+dash>.
var tokenPattern = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]+$`)

// Config holds the shared configuration of the Telegram dispatch nodes.
// Credentials are NOT configuration: the bot token and chat id arrive as
// node inputs on every invocation.
type Config struct {
	APIURL       string        `yaml:"api_url"`
	Timeout      time.Duration `yaml:"timeout"`
	PollInterval time.Duration `yaml:"poll_interval"`
	MaxPolls     int           `yaml:"max_polls"`
}

// defaults applies default values to unset fields.
func (c *Config) defaults() {
	if c.APIURL == "" {
		c.APIURL = "https://api.telegram.org"
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.MaxPolls == 0 {
		c.MaxPolls = 30
	}
}

// validate checks configuration field constraints after defaults have been
// applied.
func (c *Config) validate() error {
	if u, err := url.Parse(c.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("telegram: api_url must be a valid http/https URL, got %q", c.APIURL)
	}
	if c.MaxPolls < 1 {
		return fmt.Errorf("telegram: max_polls must be positive, got %d", c.MaxPolls)
	}
	if c.PollInterval > time.Minute {
		return fmt.Errorf("telegram: poll_interval must be at most 1m, got %s", c.PollInterval)
	}
	return nil
}

// policy derives the resolve-mode Policy from the config.
func (c *Config) policy() Policy {
	return Policy{
		PollInterval: c.PollInterval,
		MaxPolls:     c.MaxPolls,
	}
}

// validateToken rejects malformed bot tokens before any network call.
func validateToken(token string) error {
	if token == "" {
		return fmt.Errorf("telegram: bot_token is required")
	}
	if !tokenPattern.MatchString(token) {
		return fmt.Errorf("telegram: bot_token format invalid (expected <bot_id>:<hash>)")
	}
	return nil
}
