// Package config loads runtime settings from an optional env file and the
// process environment.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings
type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	Parse ParseConfig
}

// AppConfig holds process-wide settings
type AppConfig struct {
	Env      string
	LogLevel string
}

// IsDevelopment reports whether APP_ENV selects development mode
func (a AppConfig) IsDevelopment() bool {
	return a.Env == "development"
}

// HTTPConfig holds settings for the serve command
type HTTPConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadBytes int64
}

// ParseConfig holds settings passed to the processing pipeline
type ParseConfig struct {
	MaxMemberBytes int64
	Lenient        bool
}

const (
	keyAppEnv         = "app_env"
	keyLogLevel       = "log_level"
	keyHTTPAddr       = "http_addr"
	keyReadTimeout    = "http_read_timeout"
	keyWriteTimeout   = "http_write_timeout"
	keyMaxUploadBytes = "max_upload_bytes"
	keyMaxMemberBytes = "max_member_bytes"
	keyParseLenient   = "parse_lenient"
)

// Load reads .env and config/config.env when present, then the environment.
// Environment variables win over file values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath("./config")
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyAppEnv, "development")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyHTTPAddr, ":8080")
	v.SetDefault(keyReadTimeout, 30*time.Second)
	v.SetDefault(keyWriteTimeout, 60*time.Second)
	v.SetDefault(keyMaxUploadBytes, int64(32<<20))
	v.SetDefault(keyMaxMemberBytes, int64(64<<20))
	v.SetDefault(keyParseLenient, false)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      v.GetString(keyAppEnv),
			LogLevel: v.GetString(keyLogLevel),
		},
		HTTP: HTTPConfig{
			Addr:           v.GetString(keyHTTPAddr),
			ReadTimeout:    v.GetDuration(keyReadTimeout),
			WriteTimeout:   v.GetDuration(keyWriteTimeout),
			MaxUploadBytes: v.GetInt64(keyMaxUploadBytes),
		},
		Parse: ParseConfig{
			MaxMemberBytes: v.GetInt64(keyMaxMemberBytes),
			Lenient:        v.GetBool(keyParseLenient),
		},
	}
}
