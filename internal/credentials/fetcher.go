package credentials

import (
	"time"

	"github.com/BrieflyAI/Briefly-Backend/internal/db"
	"github.com/BrieflyAI/Briefly-Backend/internal/utils"
)

// sessionRow mirrors app_auth.sessions without importing the auth package,
// which itself depends on this package for the token forward.
type sessionRow struct {
	SessionID string
	UserID    string
	ExpiresAt time.Time
}

func (sessionRow) TableName() string { return "app_auth.sessions" }

type SessionInfo struct{}

func (si SessionInfo) FindSessionByID(id string) (utils.SessionData, error) {
	var session sessionRow

	err := db.DB.First(&session, "session_id = ?", id).Error
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
