package feedback_test

import (
	"errors"
	"testing"

	"github.com/BrieflyAI/Briefly-Backend/internal/feedback"
)

// TestNormalizeSubmission_EmptyMessage verifies that a missing or
// whitespace-only message is rejected.
func TestNormalizeSubmission_EmptyMessage(t *testing.T) {
	cases := []string{"", "   ", "\n\t"}
	for _, msg := range cases {
		_, err := feedback.NormalizeSubmission(feedback.SubmitRequest{Message: msg})
		if !errors.Is(err, feedback.ErrEmptyMessage) {
			t.Errorf("message %q: expected ErrEmptyMessage, got %v", msg, err)
		}
	}
}

// TestNormalizeSubmission_CategoryDefault verifies the "General" fallback and
// that an explicit category is kept.
func TestNormalizeSubmission_CategoryDefault(t *testing.T) {
	got, err := feedback.NormalizeSubmission(feedback.SubmitRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Category != feedback.DefaultCategory {
		t.Errorf("expected default category %q, got %q", feedback.DefaultCategory, got.Category)
	}

	got, err = feedback.NormalizeSubmission(feedback.SubmitRequest{Message: "hello", Category: "bug_report"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Category != "bug_report" {
		t.Errorf("expected category kept, got %q", got.Category)
	}
}

// TestNormalizeSubmission_Trimming verifies whitespace handling on message and
// email.
func TestNormalizeSubmission_Trimming(t *testing.T) {
	got, err := feedback.NormalizeSubmission(feedback.SubmitRequest{
		Message: "  needs work  ",
		Email:   "  user@example.com ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Message != "needs work" {
		t.Errorf("expected trimmed message, got %q", got.Message)
	}
	if got.Email != "user@example.com" {
		t.Errorf("expected trimmed email, got %q", got.Email)
	}
}

// TestHumanizeCategory covers the label shown on the admin review screen.
func TestHumanizeCategory(t *testing.T) {
	cases := map[string]string{
		"bug_report":      "Bug Report",
		"feature_request": "Feature Request",
		"General":         "General",
	}
	for in, want := range cases {
		if got := feedback.HumanizeCategory(in); got != want {
			t.Errorf("HumanizeCategory(%q) = %q, want %q", in, got, want)
		}
	}
}
