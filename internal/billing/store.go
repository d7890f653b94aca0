package billing

import (
	"time"

	"github.com/BrieflyAI/Briefly-Backend/internal/db"
	"github.com/BrieflyAI/Briefly-Backend/internal/profiles"
)

// SubscriptionStore is the slice of profile persistence the billing handlers
// need, kept behind an interface so handler tests can run without Postgres.
type SubscriptionStore interface {
	GetProfile(userID string) (*profiles.Profile, error)
	UpdateStatus(userID, status string) error
	Activate(userID, plan string, expiresAt time.Time, customerID, subscriptionID string) error
}

// GormStore is the production store backed by the shared gorm connection.
type GormStore struct{}

func (GormStore) GetProfile(userID string) (*profiles.Profile, error) {
	var profile profiles.Profile
	if err := db.DB.First(&profile, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (GormStore) UpdateStatus(userID, status string) error {
	return db.DB.Model(&profiles.Profile{}).
		Where("id = ?", userID).
		Update("subscription_status", status).Error
}

func (GormStore) Activate(userID, plan string, expiresAt time.Time, customerID, subscriptionID string) error {
	updates := map[string]any{
		"subscription_plan":       plan,
		"subscription_status":     profiles.StatusActive,
		"subscription_expires_at": expiresAt,
		"subscription_started_at": time.Now().UTC(),
	}
	if customerID != "" {
		updates["payment_customer_id"] = customerID
	}
	if subscriptionID != "" {
		updates["payment_subscription_id"] = subscriptionID
	}

	return db.DB.Model(&profiles.Profile{}).
		Where("id = ?", userID).
		Updates(updates).Error
}
