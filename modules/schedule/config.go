package schedule

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the scheduled-posts module configuration.
type Config struct {
	// APIURL overrides the Telegram API base URL. Intended for tests.
	APIURL string `yaml:"api_url"`

	// Timeout bounds each outbound request.
	Timeout time.Duration `yaml:"timeout"`

	Posts []PostConfig `yaml:"posts"`
}

// PostConfig is one recurring post.
type PostConfig struct {
	// Name identifies the post in logs and the journal.
	Name string `yaml:"name"`

	// Schedule is a five-field cron expression.
	Schedule string `yaml:"schedule"`

	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`

	// Text is the message body, HTML formatting allowed.
	Text string `yaml:"text"`
}

func (c *Config) defaults() {
	if c.APIURL == "" {
		c.APIURL = "https://api.telegram.org"
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
}

func (c *Config) validate() error {
	var errs []error
	seen := make(map[string]struct{})
	for i, p := range c.Posts {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("schedule: post %d: name is required", i))
			continue
		}
		if _, dup := seen[p.Name]; dup {
			errs = append(errs, fmt.Errorf("schedule: duplicate post name %q", p.Name))
		}
		seen[p.Name] = struct{}{}
		if p.Schedule == "" {
			errs = append(errs, fmt.Errorf("schedule: post %q: schedule is required", p.Name))
		}
		if p.BotToken == "" {
			errs = append(errs, fmt.Errorf("schedule: post %q: bot_token is required", p.Name))
		}
		if p.ChatID == "" {
			errs = append(errs, fmt.Errorf("schedule: post %q: chat_id is required", p.Name))
		}
		if p.Text == "" {
			errs = append(errs, fmt.Errorf("schedule: post %q: text is required", p.Name))
		}
	}
	return errors.Join(errs...)
}
