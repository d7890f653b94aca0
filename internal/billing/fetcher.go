package billing

import (
	"github.com/BrieflyAI/Briefly-Backend/internal/auth"
	"github.com/BrieflyAI/Briefly-Backend/internal/db"
	"github.com/BrieflyAI/Briefly-Backend/internal/utils"
)

type SessionInfo struct{}

func (si SessionInfo) FindSessionByID(id string) (utils.SessionData, error) {
	var session auth.Session

	err := db.DB.First(&session, "session_id = ?", id).Error
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func isAdmin(userID string) bool {
	var user auth.User
	if err := db.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return false
	}
	return user.Role == "admin"
}
