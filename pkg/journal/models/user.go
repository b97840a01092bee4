package models

import "time"

// User represents a journal account. Trades are always scoped to their
// owning user; there is no cross-user visibility.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null;size:150" json:"username"`
	Email        string     `gorm:"size:255" json:"email,omitempty"`
	PasswordHash string     `gorm:"not null" json:"-"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`

	Trades []Trade `gorm:"foreignKey:UserID" json:"-"`
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}
