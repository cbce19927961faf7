package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Directory sources.
const (
	SourceSeed  = "seed"
	SourceMongo = "mongo"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr              string
	Env               string
	LogLevel          string
	Timezone          string
	AllowedOrigins    []string
	DirectorySource   string
	MongoURI          string
	MongoDatabase     string
	DoctorCollection  string
	SlotCollection    string
	ReviewCollection  string
	Timeout           time.Duration
	FormRatePerMinute int
	FormRateBurst     int
}

// Load reads config.yaml (optional) and environment variables and returns a fully populated Config.
func Load() (Config, error) {
	v := viper.New()
	// config.yaml をカレント or ./config から探す。無ければ環境変数のみ。
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Addr:              strings.TrimSpace(v.GetString("HTTP_ADDR")),
		Env:               strings.TrimSpace(v.GetString("APP_ENV")),
		LogLevel:          strings.TrimSpace(v.GetString("LOG_LEVEL")),
		Timezone:          strings.TrimSpace(v.GetString("TIMEZONE")),
		AllowedOrigins:    parseList(v.GetString("API_ALLOWED_ORIGINS"), []string{"*"}),
		DirectorySource:   strings.ToLower(strings.TrimSpace(v.GetString("DIRECTORY_SOURCE"))),
		MongoURI:          strings.TrimSpace(v.GetString("MONGO_URI")),
		MongoDatabase:     strings.TrimSpace(v.GetString("MONGO_DB")),
		DoctorCollection:  strings.TrimSpace(v.GetString("DOCTOR_COLLECTION")),
		SlotCollection:    strings.TrimSpace(v.GetString("SLOT_COLLECTION")),
		ReviewCollection:  strings.TrimSpace(v.GetString("REVIEW_COLLECTION")),
		Timeout:           v.GetDuration("MONGO_CONNECT_TIMEOUT"),
		FormRatePerMinute: v.GetInt("FORM_RATE_PER_MINUTE"),
		FormRateBurst:     v.GetInt("FORM_RATE_BURST"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("API_ALLOWED_ORIGINS", "*")
	v.SetDefault("DIRECTORY_SOURCE", SourceSeed)
	v.SetDefault("MONGO_URI", "mongodb://mongo:27017")
	v.SetDefault("MONGO_DB", "medibook")
	v.SetDefault("DOCTOR_COLLECTION", "doctors")
	v.SetDefault("SLOT_COLLECTION", "available_slots")
	v.SetDefault("REVIEW_COLLECTION", "reviews")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	v.SetDefault("FORM_RATE_PER_MINUTE", 30)
	v.SetDefault("FORM_RATE_BURST", 5)
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	var problems []string
	if c.Addr == "" {
		problems = append(problems, "HTTP_ADDR must not be empty")
	}
	switch c.DirectorySource {
	case SourceSeed:
	case SourceMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			problems = append(problems, "MONGO_URI and MONGO_DB are required when DIRECTORY_SOURCE=mongo")
		}
		if c.DoctorCollection == "" || c.SlotCollection == "" || c.ReviewCollection == "" {
			problems = append(problems, "collection names must not be empty")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown DIRECTORY_SOURCE %q (want seed or mongo)", c.DirectorySource))
	}
	if c.Timeout <= 0 {
		problems = append(problems, "MONGO_CONNECT_TIMEOUT must be positive")
	}
	if c.FormRatePerMinute <= 0 {
		problems = append(problems, "FORM_RATE_PER_MINUTE must be positive")
	}
	if c.FormRateBurst <= 0 {
		problems = append(problems, "FORM_RATE_BURST must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("invalid TIMEZONE %q", c.Timezone))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Location returns the configured time zone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseList(raw string, fallback []string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
