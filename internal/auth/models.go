package auth

import "time"

type Session struct {
	SessionID string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"not null;unique" json:"-"`
	ExpiresAt time.Time `gorm:"not null"`
}

type User struct {
	UserID         string    `gorm:"primaryKey" json:"user_id"`
	Username       string    `gorm:"uniqueIndex" json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"password" gorm:"-"`
	HashedPassword string    `json:"-"`
	Role           string    `gorm:"default:'user'" json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	Session        Session   `gorm:"foreignKey:UserID" json:"-"`
}

// LinkedAccount stores an external OAuth identity attached to a user.
type LinkedAccount struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	UserID         string     `gorm:"index" json:"user_id"`
	Provider       string     `gorm:"index:idx_provider_uid,unique" json:"provider"`
	ProviderUserID string     `gorm:"index:idx_provider_uid,unique" json:"provider_user_id"`
	AccessToken    string     `json:"-"`
	RefreshToken   string     `json:"-"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Session) TableName() string       { return "app_auth.sessions" }
func (User) TableName() string          { return "app_auth.users" }
func (LinkedAccount) TableName() string { return "app_auth.linked_accounts" }
