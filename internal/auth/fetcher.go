package auth

import (
	"github.com/BrieflyAI/Briefly-Backend/internal/db"
	"github.com/BrieflyAI/Briefly-Backend/internal/utils"
)

type SessionInfo struct{}

func (si SessionInfo) FindSessionByID(id string) (utils.SessionData, error) {
	var session Session

	err := db.DB.First(&session, "session_id = ?", id).Error
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// RoleInfo backs the admin middleware gate.
type RoleInfo struct{}

func (ri RoleInfo) FindRoleByUserID(userID string) (string, error) {
	var user User
	if err := db.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return "", err
	}
	return user.Role, nil
}
