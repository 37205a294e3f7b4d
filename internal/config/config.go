// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"earnify/internal/domain"
	"earnify/pkg/db"

	"github.com/shopspring/decimal"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	NATSURL    string // Empty disables event publishing
	DB         db.Config
	Settings   domain.AdminSettings
}

// LoadConfig loads configuration from environment variables.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	serverPort := getEnv("SERVER_PORT", "8080")

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	settings, err := loadAdminSettings()
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		ServerPort: serverPort,
		NATSURL:    os.Getenv("NATS_URL"),
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "earnifydb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Settings: settings,
	}, nil
}

// loadAdminSettings starts from the stock economy settings and applies any
// overrides present in the environment.
func loadAdminSettings() (domain.AdminSettings, error) {
	s := domain.DefaultAdminSettings()

	if v := os.Getenv("COIN_RATE"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return s, fmt.Errorf("invalid COIN_RATE: %w", err)
		}
		s.CoinRate = rate
	}
	if v := os.Getenv("MIN_RECHARGE"); v != "" {
		min, err := decimal.NewFromString(v)
		if err != nil {
			return s, fmt.Errorf("invalid MIN_RECHARGE: %w", err)
		}
		s.MinRecharge = min
	}
	if v := os.Getenv("MIN_BKASH_NAGAD"); v != "" {
		min, err := decimal.NewFromString(v)
		if err != nil {
			return s, fmt.Errorf("invalid MIN_BKASH_NAGAD: %w", err)
		}
		s.MinBkashNagad = min
	}

	intOverrides := map[string]*int64{
		"DAILY_CHECK_IN_REWARD": &s.DailyCheckInReward,
		"WATCH_AD_REWARD":       &s.WatchAdReward,
		"CLICK_EARN_REWARD":     &s.ClickEarnReward,
		"WEBSITE_VISIT_REWARD":  &s.WebsiteVisitReward,
		"REFERRAL_REWARD":       &s.ReferralReward,
		"INVITE_REWARD":         &s.InviteReward,
	}
	for key, dst := range intOverrides {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return s, fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = n
		}
	}

	secondsOverrides := map[string]*int{
		"WEBSITE_VISIT_TIME": &s.WebsiteVisitTime,
		"AD_DURATION":        &s.AdDuration,
	}
	for key, dst := range secondsOverrides {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return s, fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = n
		}
	}

	return s, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
