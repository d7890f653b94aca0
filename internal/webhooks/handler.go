package webhooks

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/BrieflyAI/Briefly-Backend/internal/billing"
)

// Flutterwave signs webhooks with hex(sha512(body + secret)) in the
// verif-hash header.
func verifyFlutterwave(sig string, raw []byte, secret string) bool {
	sum := sha512.Sum512(append(append([]byte{}, raw...), []byte(secret)...))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) == 1
}

type flutterwaveEvent struct {
	Event string          `json:"event"`
	Data  flutterwaveData `json:"data"`
}

type flutterwaveData struct {
	ID       json.Number `json:"id"`
	TxRef    string      `json:"tx_ref"`
	Amount   float64     `json:"amount"`
	Currency string      `json:"currency"`
	Status   string      `json:"status"`
	Customer struct {
		ID    json.Number `json:"id"`
		Email string      `json:"email"`
	} `json:"customer"`
	Meta map[string]any `json:"meta"`
}

func metaString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// resolveTarget extracts the user and plan from meta, the tx_ref
// ("user|plan|timestamp"), or the charged amount, in that order.
func resolveTarget(data flutterwaveData) (userID, plan string) {
	userID = metaString(data.Meta, "user_id", "userId")
	plan = metaString(data.Meta, "plan")

	if userID == "" || plan == "" {
		parts := strings.Split(data.TxRef, "|")
		if len(parts) >= 2 {
			if userID == "" {
				userID = parts[0]
			}
			if plan == "" {
				plan = parts[1]
			}
		}
	}

	if plan == "" && billing.Pricing != nil {
		if p, ok := billing.Pricing.PlanForAmount(data.Amount); ok {
			plan = p
		}
	}
	return userID, plan
}

func paymentSucceeded(status string) bool {
	switch strings.ToLower(status) {
	case "successful", "success", "completed":
		return true
	}
	return false
}

// FlutterwaveWebhook activates or renews a subscription after a confirmed
// charge. Unknown events are acknowledged and ignored so the provider stops
// redelivering them.
// POST /webhooks/flutterwave
func FlutterwaveWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MiB
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "payload too large or unreadable", http.StatusRequestEntityTooLarge)
		return
	}
	defer r.Body.Close()

	secret := os.Getenv("FLUTTERWAVE_SECRET_HASH")
	if secret != "" {
		sig := r.Header.Get("verif-hash")
		if sig == "" {
			http.Error(w, "missing verif-hash header", http.StatusBadRequest)
			return
		}
		if !verifyFlutterwave(sig, raw, secret) {
			http.Error(w, "invalid signature", http.StatusUnauthorized)
			return
		}
	}

	var event flutterwaveEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	switch event.Event {
	case "charge.completed", "transfer.completed":
	default:
		writeJSON(w, map[string]any{"status": "ignored", "event": event.Event})
		return
	}

	if !paymentSucceeded(event.Data.Status) {
		log.Printf("[Webhook] %s with status %q, not activating", event.Event, event.Data.Status)
		writeJSON(w, map[string]any{"status": "ignored"})
		return
	}

	userID, plan := resolveTarget(event.Data)
	if userID == "" {
		http.Error(w, "user_id required in payment metadata or tx_ref", http.StatusBadRequest)
		return
	}
	if plan == "" || billing.Pricing == nil || !billing.Pricing.HasPlan(plan) {
		http.Error(w, "could not determine plan from payment", http.StatusBadRequest)
		return
	}

	expiresAt := time.Now().UTC().Add(30 * 24 * time.Hour)
	customerID := event.Data.Customer.ID.String()
	subscriptionID := metaString(event.Data.Meta, "payment_subscription_id", "subscription_id")

	if err := billing.Store.Activate(userID, plan, expiresAt, customerID, subscriptionID); err != nil {
		log.Printf("[Webhook] activation failed for user %s: %v", userID, err)
		http.Error(w, "failed to activate subscription", http.StatusInternalServerError)
		return
	}

	log.Printf("[Webhook] subscription activated for user %s, plan %s", userID, plan)
	writeJSON(w, map[string]any{
		"status":  "active",
		"user_id": userID,
		"plan":    plan,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
