package feedback

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/BrieflyAI/Briefly-Backend/internal/db"
	"github.com/BrieflyAI/Briefly-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type SubmitRequest struct {
	Message  string `json:"message"`
	Category string `json:"category,omitempty"`
	Email    string `json:"email,omitempty"`
}

// NormalizeSubmission validates the request and applies defaults. Message is
// required; category falls back to "General"; a blank email stays absent.
func NormalizeSubmission(req SubmitRequest) (SubmitRequest, error) {
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return req, ErrEmptyMessage
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		req.Category = DefaultCategory
	}
	req.Email = strings.TrimSpace(req.Email)
	return req, nil
}

// SubmitHandler stores a feedback record.
// POST /feedback
func SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	req, err := NormalizeSubmission(req)
	if err != nil {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	record := Feedback{
		ID:       uuid.New().String(),
		Category: req.Category,
		Message:  req.Message,
	}
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		record.UserID = &userID
	}
	if req.Email != "" {
		record.Email = &req.Email
	}

	if err := db.DB.Create(&record).Error; err != nil {
		http.Error(w, "Failed to save feedback", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"success":     true,
		"feedback_id": record.ID,
	})
}

// titleCaser humanizes stored category keys ("bug_report" -> "Bug Report").
var titleCaser = cases.Title(language.English)

func HumanizeCategory(category string) string {
	return titleCaser.String(strings.ReplaceAll(category, "_", " "))
}

type listItem struct {
	Feedback
	CategoryLabel string `json:"category_label"`
}

// ListHandler returns feedback newest-first for the admin review screen.
// GET /feedback?unread=true
func ListHandler(w http.ResponseWriter, r *http.Request) {
	q := db.DB.Order("created_at DESC")
	if r.URL.Query().Get("unread") == "true" {
		q = q.Where("read = ?", false)
	}

	var records []Feedback
	if err := q.Find(&records).Error; err != nil {
		http.Error(w, "Failed to fetch feedback", http.StatusInternalServerError)
		return
	}

	items := make([]listItem, 0, len(records))
	for _, rec := range records {
		items = append(items, listItem{
			Feedback:      rec,
			CategoryLabel: HumanizeCategory(rec.Category),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"feedback": items,
		"total":    len(items),
	})
}

// MarkReadHandler flips the read flag.
// POST /feedback/{id}/read
func MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result := db.DB.Model(&Feedback{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		http.Error(w, "Failed to update feedback", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Feedback not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true, "read": true})
}
