package config

import (
	"encoding/json"
	"os"

	"github.com/studyhub/studyhub-cli/internal/flagx"
	"github.com/studyhub/studyhub-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "15m"
// or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL      string         `json:"server_base_url"`
	DatabasePath       string         `json:"database_path"`
	RefreshInterval    timex.Duration `json:"refresh_interval"`
	RefreshTimeout     timex.Duration `json:"refresh_timeout"`
	GoogleClientID     string         `json:"google_client_id"`
	GoogleClientSecret string         `json:"google_client_secret"`
	OAuthListenAddr    string         `json:"oauth_listen_addr"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c or -config flag; with neither present the function
// is a no-op. Fields absent from the JSON keep their current values. Read
// or unmarshal errors panic, configuration being unusable at that point.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RefreshInterval.Duration != 0 {
		cfg.RefreshInterval = jc.RefreshInterval.Duration
	}
	if jc.RefreshTimeout.Duration != 0 {
		cfg.RefreshTimeout = jc.RefreshTimeout.Duration
	}
	if jc.GoogleClientID != "" {
		cfg.GoogleClientID = jc.GoogleClientID
	}
	if jc.GoogleClientSecret != "" {
		cfg.GoogleClientSecret = jc.GoogleClientSecret
	}
	if jc.OAuthListenAddr != "" {
		cfg.OAuthListenAddr = jc.OAuthListenAddr
	}
}
