package profiles

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/BrieflyAI/Briefly-Backend/internal/db"
	"github.com/BrieflyAI/Briefly-Backend/internal/utils"
	"gorm.io/gorm/clause"
)

const trialLength = 14 * 24 * time.Hour

// EnsureTrialProfile creates the profile row at signup with a fresh trial.
// No-op if the profile already exists.
func EnsureTrialProfile(userID, email string) error {
	trialEnd := time.Now().Add(trialLength)
	profile := Profile{
		ID:                 userID,
		Email:              email,
		SubscriptionStatus: StatusTrial,
		SubscriptionPlan:   "free",
		TrialExpiresAt:     &trialEnd,
	}
	return db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&profile).Error
}

func MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusInternalServerError)
		return
	}

	var profile Profile
	if err := db.DB.First(&profile, "id = ?", userID).Error; err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// OnboardingHandler receives the finished wizard and persists it with a
// single upsert.
// PUT /profiles/onboarding
func OnboardingHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusInternalServerError)
		return
	}

	var sel Selections
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}
	sel.FocusTags = cleanList(sel.FocusTags)
	sel.CriticalCategories = cleanList(sel.CriticalCategories)

	if err := ValidateSelections(sel); err != nil {
		http.Error(w, "All onboarding steps must be completed", http.StatusBadRequest)
		return
	}

	profile := Profile{
		ID:                 userID,
		Role:               sel.Role,
		FocusTags:          sel.FocusTags,
		CriticalCategories: sel.CriticalCategories,
		CommunicationStyle: sel.CommunicationStyle,
		OnboardingDone:     true,
	}

	// One statement: insert at first onboarding, update on re-run.
	err := db.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"role", "focus_tags", "critical_categories",
			"communication_style", "onboarding_completed", "updated_at",
		}),
	}).Create(&profile).Error
	if err != nil {
		http.Error(w, "Failed to save onboarding selections", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success":              true,
		"onboarding_completed": true,
	})
}
