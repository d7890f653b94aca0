package auth

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/BrieflyAI/Briefly-Backend/internal/credentials"
	"github.com/BrieflyAI/Briefly-Backend/internal/db"
	"github.com/BrieflyAI/Briefly-Backend/internal/profiles"
	"github.com/google/uuid"
)

const oauthStateCookie = "oauth_state"

// googleClient and linker are initialized in Init-time wiring via SetupRoutes.
var (
	googleClient *GoogleClient
	linker       *credentials.Linker
)

func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// safeNext guards against open redirects: only relative paths pass through.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

// GoogleLoginHandler starts the OAuth flow.
// GET /auth/google/login?next=/dashboard
func GoogleLoginHandler(w http.ResponseWriter, r *http.Request) {
	if googleClient == nil {
		http.Error(w, "Google sign-in is not configured", http.StatusBadGateway)
		return
	}

	state, err := generateState()
	if err != nil {
		http.Error(w, "Failed to start sign-in", http.StatusInternalServerError)
		return
	}

	// State doubles as CSRF token and carries the post-login destination.
	next := safeNext(r.URL.Query().Get("next"))
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state + "|" + next,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, googleClient.LoginURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallbackHandler finishes the OAuth flow: code exchange, user
// find-or-create, session issue, best-effort credential forward, redirect.
// GET /auth/google/callback?code=...&state=...
func GoogleCallbackHandler(w http.ResponseWriter, r *http.Request) {
	if googleClient == nil {
		http.Error(w, "Google sign-in is not configured", http.StatusBadGateway)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil {
		http.Error(w, "Missing state cookie", http.StatusUnauthorized)
		return
	}
	state, next, _ := strings.Cut(stateCookie.Value, "|")
	if state == "" || state != r.URL.Query().Get("state") {
		http.Error(w, "State mismatch", http.StatusUnauthorized)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Value: "", MaxAge: -1, Path: "/"})

	tokens, identity, err := googleClient.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("[Google] exchange failed: %v", err)
		http.Error(w, "Sign-in with Google failed", http.StatusBadGateway)
		return
	}

	user, err := findOrCreateGoogleUser(identity, tokens)
	if err != nil {
		log.Printf("[Google] user upsert failed: %v", err)
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}

	sessionID, err := startSession(user.UserID)
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, sessionCookie(sessionID, int(sessionTTL.Seconds())))

	// Forward the provider token to the credential-linking service so email
	// scanning can start without another consent round-trip. Failures are
	// swallowed: login must succeed regardless.
	if linker != nil && tokens.AccessToken != "" {
		credsJSON, _ := json.Marshal(map[string]string{
			"token":         tokens.AccessToken,
			"refresh_token": tokens.RefreshToken,
		})
		linker.Forward(r.Context(), credentials.LinkPayload{
			UserID:          user.UserID,
			CredentialsJSON: string(credsJSON),
		})
	}

	http.Redirect(w, r, safeNext(next), http.StatusFound)
}

// findOrCreateGoogleUser resolves the Google identity to a local user,
// creating the user, trial profile and linked-account row on first sign-in.
func findOrCreateGoogleUser(identity *GoogleIdentity, tokens *GoogleTokens) (*User, error) {
	var linked LinkedAccount
	err := db.DB.First(&linked, "provider = ? AND provider_user_id = ?", "google", identity.Sub).Error
	if err == nil {
		updates := LinkedAccount{
			AccessToken: tokens.AccessToken,
			UpdatedAt:   time.Now(),
		}
		if tokens.RefreshToken != "" {
			updates.RefreshToken = tokens.RefreshToken
		}
		if tokens.ExpiresIn > 0 {
			exp := time.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second)
			updates.TokenExpiresAt = &exp
		}
		if err := db.DB.Model(&linked).Updates(updates).Error; err != nil {
			return nil, err
		}

		var user User
		if err := db.DB.First(&user, "user_id = ?", linked.UserID).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}

	user := User{
		UserID:   uuid.New().String(),
		Username: identity.Email,
		Email:    identity.Email,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	linked = LinkedAccount{
		ID:             uuid.New().String(),
		UserID:         user.UserID,
		Provider:       "google",
		ProviderUserID: identity.Sub,
		AccessToken:    tokens.AccessToken,
		RefreshToken:   tokens.RefreshToken,
	}
	if tokens.ExpiresIn > 0 {
		exp := time.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second)
		linked.TokenExpiresAt = &exp
	}
	if err := db.DB.Create(&linked).Error; err != nil {
		return nil, err
	}

	if err := profiles.EnsureTrialProfile(user.UserID, user.Email); err != nil {
		return nil, err
	}
	return &user, nil
}
