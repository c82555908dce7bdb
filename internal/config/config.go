// Package config loads service configuration from environment variables
// with sensible defaults.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds everything the service needs at startup.
type Config struct {
	Host          string // SCOUT_HOST
	Port          int    // SCOUT_PORT
	OpenAIKey     string // OPENAI_API_KEY; empty disables LLM synthesis
	OpenAIBaseURL string // OPENAI_BASE_URL; empty uses api.openai.com
	Model         string // SCOUT_MODEL
	NumSources    int    // RESEARCH_SOURCES
	MaxContentLen int    // MAX_CONTENT_LENGTH
	UploadDir     string // SCOUT_UPLOAD_DIR
	LogLevel      string // SCOUT_LOG_LEVEL
	MaxJobs       int    // SCOUT_MAX_JOBS; 0 means unlimited workers
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("scout")
	v.AutomaticEnv()

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 5000)
	v.SetDefault("model", "gpt-3.5-turbo")
	v.SetDefault("sources", 3)
	v.SetDefault("content_length", 2500)
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("log_level", "info")
	v.SetDefault("max_jobs", 8)

	// Keys that predate the SCOUT_ prefix keep their original names.
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("openai_base_url", "OPENAI_BASE_URL")
	_ = v.BindEnv("sources", "RESEARCH_SOURCES")
	_ = v.BindEnv("content_length", "MAX_CONTENT_LENGTH")

	cfg := Config{
		Host:          v.GetString("host"),
		Port:          v.GetInt("port"),
		OpenAIKey:     v.GetString("openai_api_key"),
		OpenAIBaseURL: v.GetString("openai_base_url"),
		Model:         v.GetString("model"),
		NumSources:    v.GetInt("sources"),
		MaxContentLen: v.GetInt("content_length"),
		UploadDir:     v.GetString("upload_dir"),
		LogLevel:      v.GetString("log_level"),
		MaxJobs:       v.GetInt("max_jobs"),
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.NumSources <= 0 {
		return Config{}, fmt.Errorf("invalid source count %d", cfg.NumSources)
	}
	return cfg, nil
}
