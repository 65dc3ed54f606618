package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the bot, loaded from an app.env file
// or environment variables.
type Config struct {
	ServerAddress          string        `mapstructure:"SERVER_ADDRESS"`
	DBSource               string        `mapstructure:"DB_SOURCE"`
	LineChannelSecret      string        `mapstructure:"LINE_CHANNEL_SECRET"`
	LineChannelAccessToken string        `mapstructure:"LINE_CHANNEL_ACCESS_TOKEN"`
	LineAPIBaseURL         string        `mapstructure:"LINE_API_BASE_URL"`
	ForecastBaseURL        string        `mapstructure:"FORECAST_BASE_URL"`
	GeocodeBaseURL         string        `mapstructure:"GEOCODE_BASE_URL"`
	CatalogURL             string        `mapstructure:"CATALOG_URL"`
	ResolveMode            string        `mapstructure:"RESOLVE_MODE"`
	NotifyHour             int           `mapstructure:"NOTIFY_HOUR"`
	HTTPClientTimeout      time.Duration `mapstructure:"HTTP_CLIENT_TIMEOUT"`
}

// LoadConfig reads configuration from app.env in path, with environment
// variables taking precedence.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("RESOLVE_MODE", "menu")
	viper.SetDefault("NOTIFY_HOUR", 7)
	viper.SetDefault("HTTP_CLIENT_TIMEOUT", "10s")

	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		// Running purely on environment variables is fine.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	return
}
