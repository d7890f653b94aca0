package credentials

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/BrieflyAI/Briefly-Backend/internal/db"
	"github.com/BrieflyAI/Briefly-Backend/internal/profiles"
	"github.com/BrieflyAI/Briefly-Backend/internal/utils"
)

func internalKeyOK(r *http.Request) bool {
	key := os.Getenv("CREDENTIALS_SERVICE_KEY")
	if key == "" {
		return false
	}
	got := r.Header.Get("X-Internal-Key")
	return subtle.ConstantTimeCompare([]byte(got), []byte(key)) == 1
}

// StoreHandler encrypts and saves a Google credential blob on the user's
// profile. Reached two ways: the OAuth callback forwards tokens with the
// internal key, or a signed-in user posts their own credentials.
// POST /credentials
func StoreHandler(w http.ResponseWriter, r *http.Request) {
	var payload LinkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID := payload.UserID
	if !internalKeyOK(r) {
		ctxUserID, ok := utils.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		userID = ctxUserID
	}
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(payload.CredentialsJSON) == "" {
		http.Error(w, "credentials_json is required", http.StatusBadRequest)
		return
	}

	key, err := LoadKey()
	if err != nil {
		log.Printf("[Credentials] key error: %v", err)
		http.Error(w, "Credential storage unavailable", http.StatusInternalServerError)
		return
	}

	blob, err := Encrypt(key, payload.CredentialsJSON)
	if err != nil {
		log.Printf("[Credentials] encrypt error: %v", err)
		http.Error(w, "Failed to store credentials", http.StatusInternalServerError)
		return
	}

	result := db.DB.Model(&profiles.Profile{}).
		Where("id = ?", userID).
		Update("google_credentials", blob)
	if result.Error != nil {
		log.Printf("[Credentials] update error: %v", result.Error)
		http.Error(w, "Failed to store credentials", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true})
}

// StatusHandler reports whether the signed-in user has Google credentials on
// file. The blob itself never leaves the server.
// GET /credentials/status
func StatusHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var profile profiles.Profile
	if err := db.DB.Select("id", "google_credentials").First(&profile, "id = ?", userID).Error; err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"connected": profile.GoogleCredentials != "",
	})
}

// DisconnectHandler clears the stored credential blob.
// DELETE /credentials
func DisconnectHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result := db.DB.Model(&profiles.Profile{}).
		Where("id = ?", userID).
		Update("google_credentials", "")
	if result.Error != nil {
		http.Error(w, "Failed to disconnect", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true})
}
