package profiles

import (
	"time"

	"github.com/lib/pq"
)

// Roles a user can pick during onboarding. Values match what the dashboard
// sends and what the briefing pipeline keys its prompts on.
const (
	RoleInvestor   = "Investor"
	RoleInfluencer = "Influencer"
	RoleFounder    = "Founder/Business Owner"
)

// Communication styles for generated briefs.
const (
	StyleConcise      = "concise"
	StyleDetailed     = "detailed"
	StyleBulletPoints = "bullet_points"
)

// Subscription statuses. pending_cancellation means the provider accepted the
// cancel but the current paid period has not lapsed yet.
const (
	StatusTrial               = "trial"
	StatusTrialExpired        = "trial_expired"
	StatusActive              = "active"
	StatusPendingCancellation = "pending_cancellation"
	StatusCancelled           = "cancelled"
	StatusExpired             = "expired"
	StatusInactive            = "inactive"
)

type Profile struct {
	ID                 string         `gorm:"primaryKey" json:"id"`
	Email              string         `json:"email"`
	Role               string         `json:"role"`
	FocusTags          pq.StringArray `gorm:"type:text[]" json:"focus_tags"`
	CriticalCategories pq.StringArray `gorm:"type:text[]" json:"critical_categories"`
	CommunicationStyle string         `json:"communication_style"`
	OnboardingDone     bool           `gorm:"column:onboarding_completed" json:"onboarding_completed"`

	SubscriptionStatus    string     `gorm:"default:'inactive'" json:"subscription_status"`
	SubscriptionPlan      string     `gorm:"default:'free'" json:"subscription_plan"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	SubscriptionStartedAt *time.Time `json:"subscription_started_at,omitempty"`
	TrialExpiresAt        *time.Time `json:"trial_expires_at,omitempty"`
	PaymentCustomerID     string     `json:"-"`
	PaymentSubscriptionID string     `json:"-"`

	// Encrypted Google credential blob, managed by internal/credentials.
	GoogleCredentials string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "app_profiles.profiles" }

// ValidRole reports whether role is one of the onboarding roles.
func ValidRole(role string) bool {
	switch role {
	case RoleInvestor, RoleInfluencer, RoleFounder:
		return true
	}
	return false
}

// ValidStyle reports whether style is a known communication style.
func ValidStyle(style string) bool {
	switch style {
	case StyleConcise, StyleDetailed, StyleBulletPoints:
		return true
	}
	return false
}
