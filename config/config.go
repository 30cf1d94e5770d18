// Package config loads application configuration from the environment with an
// optional config file.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string `mapstructure:"PORT"`
	GinMode        string `mapstructure:"GIN_MODE"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASS"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBName         string `mapstructure:"DB_NAME"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	FrontendOrigin string `mapstructure:"FE_ORIGINS"`
	StorageBucket  string `mapstructure:"STORAGE_BUCKET"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// The config file is optional; env vars alone are enough.
	_ = viper.ReadInConfig()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("DB_USER", "socially")
	viper.SetDefault("DB_PASS", "")
	viper.SetDefault("DB_HOST", "localhost:3306")
	viper.SetDefault("DB_NAME", "socially")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 50)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 50)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("FE_ORIGINS", "http://localhost:3000")
	viper.SetDefault("STORAGE_BUCKET", "")
	viper.SetDefault("LOG_LEVEL", "info")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.DBHost == "" || c.DBName == "" || c.DBUser == "" {
		return errors.New("DB_HOST, DB_NAME and DB_USER are required")
	}
	return nil
}
