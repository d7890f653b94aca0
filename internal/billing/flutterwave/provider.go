package flutterwave

import (
	"context"

	"github.com/BrieflyAI/Briefly-Backend/internal/billing/provider"
)

// Provider implements provider.PaymentProvider backed by the Flutterwave API.
type Provider struct {
	client *Client
}

func init() {
	provider.RegisterProvider(provider.ProviderFlutterwave, New)
}

// New creates a Flutterwave provider from config.
func New(cfg provider.Config) (provider.PaymentProvider, error) {
	return &Provider{
		client: NewClient(cfg.FlutterwaveKey, cfg.FlutterwaveEndpoint),
	}, nil
}

func (p *Provider) Name() string {
	return "Flutterwave"
}

func (p *Provider) CancelSubscription(ctx context.Context, subscriptionID string) error {
	return p.client.CancelSubscription(ctx, subscriptionID)
}

func (p *Provider) HealthCheck(ctx context.Context) error {
	return p.client.Ping(ctx)
}
