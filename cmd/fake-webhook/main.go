package main

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Sends a signed Flutterwave-shaped webhook to a local server so the payment
// flow can be exercised without real charges.

var (
	target = flag.String("url", "http://localhost:5050/webhooks/flutterwave", "Webhook endpoint")
	userID = flag.String("user", "", "User ID to activate (required)")
	plan   = flag.String("plan", "standard", "Plan key (standard or pro)")
	amount = flag.Float64("amount", 29, "Charge amount")
	event  = flag.String("event", "charge.completed", "Event name")
	status = flag.String("status", "successful", "Charge status")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	if *userID == "" {
		log.Fatal("-user is required")
	}

	payload := map[string]any{
		"event": *event,
		"data": map[string]any{
			"id":       4567890,
			"tx_ref":   fmt.Sprintf("%s|%s|%d", *userID, *plan, time.Now().Unix()),
			"amount":   *amount,
			"currency": "USD",
			"status":   *status,
			"customer": map[string]any{
				"id":    998877,
				"email": "test@example.com",
			},
			"meta": map[string]any{
				"user_id": *userID,
				"plan":    *plan,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("Marshal error: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, *target, bytes.NewReader(body))
	if err != nil {
		log.Fatalf("Request error: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if secret := os.Getenv("FLUTTERWAVE_SECRET_HASH"); secret != "" {
		sum := sha512.Sum512(append(body, []byte(secret)...))
		req.Header.Set("verif-hash", hex.EncodeToString(sum[:]))
	} else {
		fmt.Println("FLUTTERWAVE_SECRET_HASH not set, sending unsigned")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("HTTP %d\n%s\n", resp.StatusCode, respBody)
}
