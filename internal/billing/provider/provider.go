package provider

import (
	"context"
	"errors"
	"fmt"
)

// Common errors
var (
	ErrMissingFlutterwaveKey = errors.New("FLUTTERWAVE_SECRET_KEY environment variable is required for flutterwave provider")
	ErrUnknownProvider       = errors.New("unknown provider type")
	ErrSubscriptionNotFound  = errors.New("subscription not found at payment provider")
)

// PaymentProvider abstracts the payment vendor's subscription API so the
// cancellation flow does not care which processor is configured.
type PaymentProvider interface {
	// Name returns the provider name for logging purposes.
	Name() string

	// CancelSubscription stops renewal for the given provider-side
	// subscription ID. The current paid period is not refunded.
	CancelSubscription(ctx context.Context, subscriptionID string) error

	// HealthCheck verifies the provider API is reachable with the
	// configured credentials.
	HealthCheck(ctx context.Context) error
}

// providerRegistry holds registered provider constructors, so new processors
// can be added without touching this package.
var providerRegistry = make(map[ProviderType]func(Config) (PaymentProvider, error))

// RegisterProvider registers a constructor for a provider type. Called from
// init() in each provider package.
func RegisterProvider(providerType ProviderType, constructor func(Config) (PaymentProvider, error)) {
	providerRegistry[providerType] = constructor
}

// NewProvider creates a PaymentProvider from the configuration.
func NewProvider(cfg Config) (PaymentProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	constructor, ok := providerRegistry[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}

	return constructor(cfg)
}
