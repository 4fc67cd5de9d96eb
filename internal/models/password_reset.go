package models

import "time"

// PasswordReset is a single-use reset token issued by the auth handler
type PasswordReset struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"index"`
	Token     string    `json:"-" gorm:"uniqueIndex"`
	ExpiresAt time.Time `json:"-"`
	Used      bool      `json:"-" gorm:"default:false"`
	CreatedAt time.Time `json:"-"`
}
