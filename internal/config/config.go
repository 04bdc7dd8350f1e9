package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const DefaultPlaceholderImage = "https://images.unsplash.com/photo-1580913428735-bd3c269d6a82?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=250&q=30"

type Config struct {
	ListenAddr       string
	DBPath           string
	PublicURL        string
	UploadsPath      string
	PlaceholderImage string
	APIURL           string
	GeorefURL        string
	GeorefCacheTTL   time.Duration
	LogLevel         string
	LogFile          string
}

var defaults = map[string]any{
	"LISTEN_ADDR":             ":3333",
	"DB_PATH":                 "/data/ecoleta.db",
	"PUBLIC_URL":              "http://localhost:3333",
	"UPLOADS_PATH":            "/data/uploads",
	"POINT_PLACEHOLDER_IMAGE": DefaultPlaceholderImage,
	"API_URL":                 "http://localhost:3333",
	"GEOREF_URL":              "https://servicodados.ibge.gov.br/api/v1/localidades",
	"GEOREF_CACHE_TTL":        "24h",
	"LOG_LEVEL":               "info",
	"LOG_FILE":                "",
}

// Load reads configuration from the environment, falling back to the YAML
// file at configFile (if non-empty) and then to defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	ttl := v.GetDuration("GEOREF_CACHE_TTL")
	if ttl <= 0 {
		return nil, errors.New("GEOREF_CACHE_TTL must be a positive duration")
	}

	return &Config{
		ListenAddr:       v.GetString("LISTEN_ADDR"),
		DBPath:           v.GetString("DB_PATH"),
		PublicURL:        v.GetString("PUBLIC_URL"),
		UploadsPath:      v.GetString("UPLOADS_PATH"),
		PlaceholderImage: v.GetString("POINT_PLACEHOLDER_IMAGE"),
		APIURL:           v.GetString("API_URL"),
		GeorefURL:        v.GetString("GEOREF_URL"),
		GeorefCacheTTL:   ttl,
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFile:          v.GetString("LOG_FILE"),
	}, nil
}
