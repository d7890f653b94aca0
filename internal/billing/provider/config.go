package provider

import (
	"os"
	"strings"
)

// ProviderType identifies which payment processor to use.
type ProviderType string

const (
	ProviderFlutterwave ProviderType = "flutterwave"
)

// Config holds configuration for the payment provider.
type Config struct {
	Provider ProviderType

	// Flutterwave-specific config
	FlutterwaveKey      string
	FlutterwaveEndpoint string
}

// DefaultFlutterwaveEndpoint is the Flutterwave v3 API base URL.
const DefaultFlutterwaveEndpoint = "https://api.flutterwave.com/v3"

// LoadFromEnv loads provider configuration from environment variables.
//
// Environment variables:
//   - PAYMENT_PROVIDER: "flutterwave" (default: "flutterwave")
//   - FLUTTERWAVE_SECRET_KEY: API secret key (required)
//   - FLUTTERWAVE_ENDPOINT: API base URL override (default: https://api.flutterwave.com/v3)
func LoadFromEnv() Config {
	providerStr := strings.ToLower(strings.TrimSpace(os.Getenv("PAYMENT_PROVIDER")))

	var p ProviderType
	switch providerStr {
	case "":
		p = ProviderFlutterwave
	default:
		p = ProviderType(providerStr)
	}

	endpoint := strings.TrimSpace(os.Getenv("FLUTTERWAVE_ENDPOINT"))
	if endpoint == "" {
		endpoint = DefaultFlutterwaveEndpoint
	}

	return Config{
		Provider:            p,
		FlutterwaveKey:      os.Getenv("FLUTTERWAVE_SECRET_KEY"),
		FlutterwaveEndpoint: endpoint,
	}
}

// Validate checks that the configuration is valid for the selected provider.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderFlutterwave:
		if c.FlutterwaveKey == "" {
			return ErrMissingFlutterwaveKey
		}
	}
	return nil
}
