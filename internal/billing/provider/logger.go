package provider

import (
	"log"
	"time"
)

// LogRequest logs an API request being made.
func LogRequest(provider, method, url string) {
	log.Printf("[%s] %s %s", provider, method, url)
}

// LogResponse logs an API response received.
func LogResponse(provider string, statusCode int, duration time.Duration) {
	log.Printf("[%s] response status=%d duration=%dms",
		provider, statusCode, duration.Milliseconds())
}

// LogError logs an error from an API operation.
func LogError(provider, operation string, err error) {
	log.Printf("[%s] %s error: %v", provider, operation, err)
}
