package config

import "time"

// Config holds runtime settings for the StudyHub CLI.
type Config struct {
	// ServerBaseURL is the root of the backend REST API.
	ServerBaseURL string
	// DatabasePath is the SQLite file holding persisted session state.
	DatabasePath string
	// RefreshInterval is how often the background refresher renews the
	// session while a user is signed in.
	RefreshInterval time.Duration
	// RefreshTimeout bounds one background refresh attempt.
	RefreshTimeout time.Duration
	// GoogleClientID and GoogleClientSecret identify this app to Google
	// for the interactive sign-in flow.
	GoogleClientID     string
	GoogleClientSecret string
	// OAuthListenAddr is the loopback address that catches the sign-in
	// redirect. Port 0 picks a free one.
	OAuthListenAddr string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "studyhub.db"
	c.RefreshInterval = 15 * time.Minute
	c.RefreshTimeout = 30 * time.Second
	c.OAuthListenAddr = "127.0.0.1:0"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
