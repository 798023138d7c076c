package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DiscordBotToken     string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordClientID     string `mapstructure:"DISCORD_CLIENT_ID"`
	GuildID             string `mapstructure:"DISCORD_GUILD_ID"`
	AdminRoleID         string `mapstructure:"ADMIN_ROLE_ID"`
	SupportCategoryID   string `mapstructure:"SUPPORT_CATEGORY_ID"`
	DepositCategoryID   string `mapstructure:"DEPOSIT_WITHDRAW_CATEGORY_ID"`
	APISecret           string `mapstructure:"DISCORD_BOT_SECRET"`
	Port                string `mapstructure:"PORT"`
	DB_URL              string `mapstructure:"DB_URL"`
	RateLimitMax        int    `mapstructure:"RATE_LIMIT_MAX"`
	RateLimitWindowMins int    `mapstructure:"RATE_LIMIT_WINDOW_MINUTES"`
}

func LoadConfig(path string) (config Config, err error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return config, fmt.Errorf("failed to resolve config path: %w", err)
	}

	viper.SetConfigFile(absPath)
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "3001")
	viper.SetDefault("RATE_LIMIT_MAX", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW_MINUTES", 15)

	if err := viper.ReadInConfig(); err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}

	if err := viper.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return config, err
	}

	return config, nil
}

func (c Config) validate() error {
	if c.DiscordBotToken == "" {
		return errors.New("DISCORD_BOT_TOKEN is required")
	}
	if c.GuildID == "" {
		return errors.New("DISCORD_GUILD_ID is required")
	}
	if c.APISecret == "" {
		return errors.New("DISCORD_BOT_SECRET is required")
	}
	if c.DB_URL == "" {
		return errors.New("DB_URL is required")
	}
	if c.RateLimitMax <= 0 || c.RateLimitWindowMins <= 0 {
		return errors.New("rate limit settings must be positive")
	}
	return nil
}

func (c Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowMins) * time.Minute
}
