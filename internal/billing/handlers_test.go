package billing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BrieflyAI/Briefly-Backend/internal/profiles"
	"github.com/BrieflyAI/Briefly-Backend/internal/utils"
)

// stubStore implements SubscriptionStore in memory.
type stubStore struct {
	profile      *profiles.Profile
	getErr       error
	updateErr    error
	updatedTo    string
	activateErr  error
	activatePlan string
}

func (s *stubStore) GetProfile(userID string) (*profiles.Profile, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.profile, nil
}

func (s *stubStore) UpdateStatus(userID, status string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedTo = status
	return nil
}

func (s *stubStore) Activate(userID, plan string, expiresAt time.Time, customerID, subscriptionID string) error {
	if s.activateErr != nil {
		return s.activateErr
	}
	s.activatePlan = plan
	return nil
}

// stubProvider implements provider.PaymentProvider and records cancel calls.
type stubProvider struct {
	cancelErr error
	cancelled []string
}

func (s *stubProvider) Name() string { return "Stub" }

func (s *stubProvider) CancelSubscription(ctx context.Context, subscriptionID string) error {
	s.cancelled = append(s.cancelled, subscriptionID)
	return s.cancelErr
}

func (s *stubProvider) HealthCheck(ctx context.Context) error { return nil }

func requestAs(userID, method, target string, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), utils.ContextUserIDKey, userID)
	return req.WithContext(ctx)
}

func timePtr(t time.Time) *time.Time { return &t }

func TestBuildInfo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("active subscription", func(t *testing.T) {
		p := &profiles.Profile{
			SubscriptionStatus:    profiles.StatusActive,
			SubscriptionPlan:      "standard",
			SubscriptionExpiresAt: timePtr(now.Add(10 * 24 * time.Hour)),
		}
		info := buildInfo(p, now)
		if !info.IsActive {
			t.Error("expected active")
		}
		if info.DaysRemaining == nil || *info.DaysRemaining != 10 {
			t.Errorf("expected 10 days remaining, got %v", info.DaysRemaining)
		}
	})

	t.Run("active without expiry is lifetime", func(t *testing.T) {
		p := &profiles.Profile{SubscriptionStatus: profiles.StatusActive}
		info := buildInfo(p, now)
		if !info.IsActive {
			t.Error("expected lifetime subscription to be active")
		}
		if info.DaysRemaining != nil {
			t.Errorf("expected no days_remaining, got %d", *info.DaysRemaining)
		}
	})

	t.Run("lapsed active", func(t *testing.T) {
		p := &profiles.Profile{
			SubscriptionStatus:    profiles.StatusActive,
			SubscriptionExpiresAt: timePtr(now.Add(-time.Hour)),
		}
		if info := buildInfo(p, now); info.IsActive {
			t.Error("expected lapsed subscription to be inactive")
		}
	})

	t.Run("pending cancellation keeps access", func(t *testing.T) {
		p := &profiles.Profile{
			SubscriptionStatus:    profiles.StatusPendingCancellation,
			SubscriptionExpiresAt: timePtr(now.Add(5 * 24 * time.Hour)),
		}
		info := buildInfo(p, now)
		if !info.IsActive {
			t.Error("expected access until period end")
		}
		if info.DaysRemaining == nil || *info.DaysRemaining != 5 {
			t.Errorf("expected 5 days remaining, got %v", info.DaysRemaining)
		}
	})

	t.Run("trial uses trial expiry", func(t *testing.T) {
		p := &profiles.Profile{
			SubscriptionStatus: profiles.StatusTrial,
			TrialExpiresAt:     timePtr(now.Add(3 * 24 * time.Hour)),
		}
		info := buildInfo(p, now)
		if !info.IsActive {
			t.Error("expected trial to be active")
		}
		if info.DaysRemaining == nil || *info.DaysRemaining != 3 {
			t.Errorf("expected 3 days remaining, got %v", info.DaysRemaining)
		}
	})

	t.Run("cancelled is inactive", func(t *testing.T) {
		p := &profiles.Profile{SubscriptionStatus: profiles.StatusCancelled}
		if info := buildInfo(p, now); info.IsActive {
			t.Error("expected cancelled to be inactive")
		}
	})
}

// swapCollaborators replaces the package-level Store and Provider for the
// duration of a test.
func swapCollaborators(t *testing.T, store SubscriptionStore, prov *stubProvider) {
	t.Helper()
	origStore, origProvider := Store, Provider
	Store = store
	if prov != nil {
		Provider = prov
	} else {
		Provider = nil
	}
	t.Cleanup(func() {
		Store = origStore
		Provider = origProvider
	})
}

func TestCancelHandler_ProfileNotFound(t *testing.T) {
	swapCollaborators(t, &stubStore{getErr: errors.New("record not found")}, &stubProvider{})

	rec := httptest.NewRecorder()
	CancelHandler(rec, requestAs("u1", http.MethodPost, "/billing/cancel", ""))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestCancelHandler_NoSubscriptionOnFile(t *testing.T) {
	prov := &stubProvider{}
	swapCollaborators(t, &stubStore{
		profile: &profiles.Profile{ID: "u1", SubscriptionStatus: profiles.StatusActive},
	}, prov)

	rec := httptest.NewRecorder()
	CancelHandler(rec, requestAs("u1", http.MethodPost, "/billing/cancel", ""))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if len(prov.cancelled) != 0 {
		t.Errorf("provider must not be called without a subscription ID, got %v", prov.cancelled)
	}
}

func TestCancelHandler_ProviderUnavailable(t *testing.T) {
	swapCollaborators(t, &stubStore{
		profile: &profiles.Profile{ID: "u1", PaymentSubscriptionID: "sub_123"},
	}, nil)

	rec := httptest.NewRecorder()
	CancelHandler(rec, requestAs("u1", http.MethodPost, "/billing/cancel", ""))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502 with no provider configured, got %d", rec.Code)
	}
}

func TestCancelHandler_ProviderFailureLeavesStatusUntouched(t *testing.T) {
	store := &stubStore{
		profile: &profiles.Profile{
			ID:                    "u1",
			SubscriptionStatus:    profiles.StatusActive,
			PaymentSubscriptionID: "sub_123",
		},
	}
	prov := &stubProvider{cancelErr: errors.New("upstream 500")}
	swapCollaborators(t, store, prov)

	rec := httptest.NewRecorder()
	CancelHandler(rec, requestAs("u1", http.MethodPost, "/billing/cancel", ""))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
	if store.updatedTo != "" {
		t.Errorf("status must stay untouched on provider failure, got update to %q", store.updatedTo)
	}
}

func TestCancelHandler_SplitStateAfterProviderSuccess(t *testing.T) {
	store := &stubStore{
		profile: &profiles.Profile{
			ID:                    "u1",
			SubscriptionStatus:    profiles.StatusActive,
			PaymentSubscriptionID: "sub_123",
		},
		updateErr: errors.New("db down"),
	}
	prov := &stubProvider{}
	swapCollaborators(t, store, prov)

	rec := httptest.NewRecorder()
	CancelHandler(rec, requestAs("u1", http.MethodPost, "/billing/cancel", ""))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "contact support") {
		t.Errorf("expected split-state message, got: %q", rec.Body.String())
	}
	if len(prov.cancelled) != 1 || prov.cancelled[0] != "sub_123" {
		t.Errorf("expected exactly one provider cancel for sub_123, got %v", prov.cancelled)
	}
}

func TestCancelHandler_Success(t *testing.T) {
	store := &stubStore{
		profile: &profiles.Profile{
			ID:                    "u1",
			SubscriptionStatus:    profiles.StatusActive,
			PaymentSubscriptionID: "sub_123",
		},
	}
	prov := &stubProvider{}
	swapCollaborators(t, store, prov)

	rec := httptest.NewRecorder()
	CancelHandler(rec, requestAs("u1", http.MethodPost, "/billing/cancel", `{"reason":"too expensive"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}
	if store.updatedTo != profiles.StatusPendingCancellation {
		t.Errorf("expected status pending_cancellation, got %q", store.updatedTo)
	}
	if len(prov.cancelled) != 1 {
		t.Errorf("expected one provider cancel call, got %d", len(prov.cancelled))
	}
}

func TestRenewHandler_RequiresActive(t *testing.T) {
	swapCollaborators(t, &stubStore{
		profile: &profiles.Profile{ID: "u1", SubscriptionStatus: profiles.StatusTrial},
	}, nil)

	rec := httptest.NewRecorder()
	RenewHandler(rec, requestAs("u1", http.MethodPost, "/billing/renew", ""))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-active status, got %d", rec.Code)
	}
}
