package admin

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/BrieflyAI/Briefly-Backend/internal/billing"
	"github.com/BrieflyAI/Briefly-Backend/internal/db"
	"github.com/BrieflyAI/Briefly-Backend/internal/feedback"
	"github.com/BrieflyAI/Briefly-Backend/internal/profiles"
)

type statsResponse struct {
	TotalUsers       int64            `json:"total_users"`
	ConnectedUsers   int64            `json:"connected_users"`
	ActiveSubs       int64            `json:"active_subscriptions"`
	Trials           int64            `json:"trials"`
	TotalFeedback    int64            `json:"total_feedback"`
	UnreadFeedback   int64            `json:"unread_feedback"`
	MonthlyRecurring float64          `json:"monthly_recurring_revenue"`
	PlanBreakdown    map[string]int64 `json:"plan_breakdown"`
}

// StatsHandler aggregates headline numbers for the admin dashboard. MRR is
// derived from the pricing catalog, so it tracks plans.yaml edits.
// GET /admin/stats
func StatsHandler(w http.ResponseWriter, r *http.Request) {
	var stats statsResponse
	stats.PlanBreakdown = make(map[string]int64)

	if err := db.DB.Model(&profiles.Profile{}).Count(&stats.TotalUsers).Error; err != nil {
		log.Printf("[Admin] stats query failed: %v", err)
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}
	db.DB.Model(&profiles.Profile{}).
		Where("subscription_status IN ?", []string{profiles.StatusActive, profiles.StatusPendingCancellation}).
		Count(&stats.ActiveSubs)
	db.DB.Model(&profiles.Profile{}).
		Where("subscription_status = ?", profiles.StatusTrial).
		Count(&stats.Trials)
	db.DB.Model(&profiles.Profile{}).
		Where("google_credentials <> ''").
		Count(&stats.ConnectedUsers)
	db.DB.Model(&feedback.Feedback{}).Count(&stats.TotalFeedback)
	db.DB.Model(&feedback.Feedback{}).
		Where("read = ?", false).
		Count(&stats.UnreadFeedback)

	type planCount struct {
		Plan  string
		Count int64
	}
	var counts []planCount
	db.DB.Model(&profiles.Profile{}).
		Select("subscription_plan AS plan, COUNT(*) AS count").
		Where("subscription_status IN ?", []string{profiles.StatusActive, profiles.StatusPendingCancellation}).
		Group("subscription_plan").
		Scan(&counts)

	for _, c := range counts {
		stats.PlanBreakdown[c.Plan] = c.Count
		if billing.Pricing != nil {
			if p, ok := billing.Pricing.Plans[c.Plan]; ok {
				stats.MonthlyRecurring += p.Price * float64(c.Count)
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

type userRow struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Role               string     `json:"role"`
	SubscriptionStatus string     `json:"subscription_status"`
	SubscriptionPlan   string     `json:"subscription_plan"`
	TrialExpiresAt     *time.Time `json:"trial_expires_at,omitempty"`
	OnboardingDone     bool       `json:"onboarding_completed"`
	HasCredentials     bool       `json:"has_credentials"`
	CreatedAt          time.Time  `json:"created_at"`
}

type usersResponse struct {
	Users []userRow `json:"users"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

// UsersHandler lists user profiles with pagination. Credential blobs are
// reduced to a boolean and never serialized.
// GET /admin/users?page=1&limit=50&status=trial
func UsersHandler(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	query := db.DB.Model(&profiles.Profile{})
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("subscription_status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("[Admin] user count failed: %v", err)
		http.Error(w, "Failed to load users", http.StatusInternalServerError)
		return
	}

	var rows []profiles.Profile
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&rows).Error
	if err != nil {
		log.Printf("[Admin] user query failed: %v", err)
		http.Error(w, "Failed to load users", http.StatusInternalServerError)
		return
	}

	resp := usersResponse{
		Users: make([]userRow, 0, len(rows)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for _, p := range rows {
		resp.Users = append(resp.Users, userRow{
			ID:                 p.ID,
			Email:              p.Email,
			Role:               p.Role,
			SubscriptionStatus: p.SubscriptionStatus,
			SubscriptionPlan:   p.SubscriptionPlan,
			TrialExpiresAt:     p.TrialExpiresAt,
			OnboardingDone:     p.OnboardingDone,
			HasCredentials:     p.GoogleCredentials != "",
			CreatedAt:          p.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
