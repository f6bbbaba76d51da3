package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Backend
	APIURL             string `mapstructure:"API_URL"`
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`

	// Terminal credentials
	Email    string `mapstructure:"TERMINAL_EMAIL"`
	Password string `mapstructure:"TERMINAL_PASSWORD"`

	// Business header printed on tickets
	AppTitle        string `mapstructure:"APP_TITLE"`
	BusinessNIT     string `mapstructure:"BUSINESS_NIT"`
	BusinessAddress string `mapstructure:"BUSINESS_ADDRESS"`
	BusinessPhone   string `mapstructure:"BUSINESS_PHONE"`

	// Output
	PDFStoragePath string `mapstructure:"PDF_STORAGE_PATH"`
	ExportPath     string `mapstructure:"EXPORT_PATH"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development. Every key needs a default (or an
	// explicit bind) so AutomaticEnv picks it up during Unmarshal.
	viper.SetDefault("API_URL", "http://localhost:3000")
	viper.SetDefault("TERMINAL_EMAIL", "")
	viper.SetDefault("TERMINAL_PASSWORD", "")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 15)
	viper.SetDefault("APP_TITLE", "SPOS")
	viper.SetDefault("BUSINESS_NIT", "9807687")
	viper.SetDefault("BUSINESS_ADDRESS", "Av. Principal 123")
	viper.SetDefault("BUSINESS_PHONE", "78010833")
	viper.SetDefault("PDF_STORAGE_PATH", "/tmp/spos/tickets")
	viper.SetDefault("EXPORT_PATH", "/tmp/spos/exports")

	// Optional .env file for local development; missing is not an error
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
