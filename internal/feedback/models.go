package feedback

import "time"

// DefaultCategory is applied when a submission omits the category field.
const DefaultCategory = "General"

type Feedback struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    *string   `gorm:"index" json:"user_id,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Category  string    `gorm:"default:'General'" json:"category"`
	Message   string    `gorm:"not null" json:"message"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func (Feedback) TableName() string { return "app_feedback.feedback" }
