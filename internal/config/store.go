package config

import (
	"fmt"
	"strconv"
	"time"
)

// StoreConfig holds everything needed to reach the storefront under test.
type StoreConfig struct {
	BaseURL        string
	Username       string
	Password       string
	Role           string
	VATRate        float64
	ResponseBudget time.Duration
}

// LoadStoreConfig loads storefront configuration from environment variables.
// The password is the only required value; it is a shared secret and must
// never be baked into the repository.
func LoadStoreConfig(getenv func(string) string) (*StoreConfig, error) {
	config := &StoreConfig{
		BaseURL:        getenv("STORE_BASE_URL"),
		Username:       getenv("STORE_USERNAME"),
		Password:       getenv("STORE_PASSWORD"),
		Role:           getenv("STORE_ROLE"),
		VATRate:        0.2,
		ResponseBudget: time.Second,
	}

	if config.Password == "" {
		return nil, fmt.Errorf("STORE_PASSWORD is required")
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://hoff.is"
	}
	if config.Username == "" {
		config.Username = "Johan"
	}
	if config.Role == "" {
		config.Role = "consumer"
	}

	// Every customer of the store is billed at the flat 20% VAT rate, but it
	// stays overridable for targeting other deployments.
	if raw := getenv("STORE_VAT_RATE"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate < 0 || rate >= 1 {
			return nil, fmt.Errorf("STORE_VAT_RATE must be a fraction in [0,1), got %q", raw)
		}
		config.VATRate = rate
	}

	if raw := getenv("STORE_RESPONSE_BUDGET_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("STORE_RESPONSE_BUDGET_MS must be a positive integer, got %q", raw)
		}
		config.ResponseBudget = time.Duration(ms) * time.Millisecond
	}

	return config, nil
}
