package billing

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/BrieflyAI/Briefly-Backend/internal/billing/provider"
	"github.com/BrieflyAI/Briefly-Backend/internal/profiles"
	"github.com/BrieflyAI/Briefly-Backend/internal/utils"
)

// Package-level collaborators, wired in Init. Tests swap these for stubs.
var (
	Provider provider.PaymentProvider
	Store    SubscriptionStore = GormStore{}
	Pricing  *Catalog
)

type InfoResponse struct {
	SubscriptionStatus    string     `json:"subscription_status"`
	SubscriptionPlan      string     `json:"subscription_plan"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	SubscriptionStartedAt *time.Time `json:"subscription_started_at,omitempty"`
	TrialExpiresAt        *time.Time `json:"trial_expires_at,omitempty"`
	IsActive              bool       `json:"is_active"`
	DaysRemaining         *int       `json:"days_remaining,omitempty"`
}

// buildInfo derives is_active and days_remaining from the stored expiry.
func buildInfo(p *profiles.Profile, now time.Time) InfoResponse {
	info := InfoResponse{
		SubscriptionStatus:    p.SubscriptionStatus,
		SubscriptionPlan:      p.SubscriptionPlan,
		SubscriptionExpiresAt: p.SubscriptionExpiresAt,
		SubscriptionStartedAt: p.SubscriptionStartedAt,
		TrialExpiresAt:        p.TrialExpiresAt,
	}

	var expiry *time.Time
	switch p.SubscriptionStatus {
	case profiles.StatusActive, profiles.StatusPendingCancellation:
		expiry = p.SubscriptionExpiresAt
		if expiry == nil {
			// Active with no expiry is a lifetime (admin) subscription.
			info.IsActive = true
			return info
		}
	case profiles.StatusTrial:
		expiry = p.TrialExpiresAt
	default:
		return info
	}

	if expiry != nil && expiry.After(now) {
		info.IsActive = true
		days := int(expiry.Sub(now).Hours() / 24)
		info.DaysRemaining = &days
	}
	return info
}

// InfoHandler returns the caller's subscription state.
// GET /billing/info
func InfoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusInternalServerError)
		return
	}

	p, err := Store.GetProfile(userID)
	if err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(buildInfo(p, time.Now()))
}

type SubscribeRequest struct {
	Plan string `json:"plan"`
}

// SubscribeHandler hands out the hosted checkout link for a plan. Admin
// accounts are activated directly without payment.
// POST /billing/subscribe
func SubscribeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusInternalServerError)
		return
	}

	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	if Pricing == nil || !Pricing.HasPlan(req.Plan) {
		http.Error(w, "Invalid plan", http.StatusBadRequest)
		return
	}

	if isAdmin(userID) {
		farFuture := time.Now().UTC().AddDate(100, 0, 0)
		if err := Store.Activate(userID, req.Plan, farFuture, "", ""); err != nil {
			http.Error(w, "Failed to activate subscription", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"plan":    req.Plan,
			"status":  profiles.StatusActive,
		})
		return
	}

	link := PaymentLink(req.Plan)
	if link == "" {
		http.Error(w, "Payment link not configured for plan", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success":      true,
		"plan":         req.Plan,
		"price":        Pricing.Plans[req.Plan].Price,
		"payment_link": link,
		"status":       "pending_payment",
	})
}

type CancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelHandler stops renewal. The provider is called first; local status
// only moves to pending_cancellation after the provider accepted the cancel.
// A provider success followed by a local write failure is surfaced as its own
// error rather than retried.
// POST /billing/cancel
func CancelHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusInternalServerError)
		return
	}

	var req CancelRequest
	if r.Body != nil {
		// Body is optional; decode errors on an empty body are fine.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	p, err := Store.GetProfile(userID)
	if err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	if p.PaymentSubscriptionID == "" {
		http.Error(w, "No subscription on file", http.StatusBadRequest)
		return
	}

	if Provider == nil {
		http.Error(w, "Payment provider unavailable", http.StatusBadGateway)
		return
	}

	if err := Provider.CancelSubscription(r.Context(), p.PaymentSubscriptionID); err != nil {
		provider.LogError(Provider.Name(), "cancel", err)
		http.Error(w, "Payment provider could not cancel the subscription", http.StatusBadGateway)
		return
	}

	if err := Store.UpdateStatus(userID, profiles.StatusPendingCancellation); err != nil {
		// Provider-side cancel already happened; report the split state
		// instead of retrying.
		log.Printf("[Billing] cancel succeeded at provider but local update failed for user %s: %v", userID, err)
		http.Error(w,
			"Subscription was cancelled with the payment provider, but updating your account failed. Please contact support.",
			http.StatusInternalServerError)
		return
	}

	if req.Reason != "" {
		log.Printf("[Billing] user %s cancelled: %s", userID, req.Reason)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Subscription cancelled. Access continues until the end of the current billing period.",
	})
}

// RenewHandler extends an active subscription by 30 days.
// POST /billing/renew
func RenewHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusInternalServerError)
		return
	}

	p, err := Store.GetProfile(userID)
	if err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}
	if p.SubscriptionStatus != profiles.StatusActive {
		http.Error(w, "No active subscription to renew", http.StatusBadRequest)
		return
	}

	base := time.Now().UTC()
	if p.SubscriptionExpiresAt != nil && p.SubscriptionExpiresAt.After(base) {
		base = *p.SubscriptionExpiresAt
	}
	expiresAt := base.Add(30 * 24 * time.Hour)

	if err := Store.Activate(userID, p.SubscriptionPlan, expiresAt, p.PaymentCustomerID, p.PaymentSubscriptionID); err != nil {
		http.Error(w, "Failed to renew subscription", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success":    true,
		"expires_at": expiresAt.Format(time.RFC3339),
		"status":     profiles.StatusActive,
	})
}

type planResponse struct {
	Plan
	Key         string `json:"key"`
	PaymentLink string `json:"payment_link,omitempty"`
}

// PlansHandler returns the public pricing catalog.
// GET /billing/plans
func PlansHandler(w http.ResponseWriter, r *http.Request) {
	if Pricing == nil {
		http.Error(w, "Pricing unavailable", http.StatusInternalServerError)
		return
	}

	out := make([]planResponse, 0, len(Pricing.Plans))
	for key, p := range Pricing.Plans {
		out = append(out, planResponse{
			Plan:        p,
			Key:         key,
			PaymentLink: PaymentLink(key),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"plans": out})
}
