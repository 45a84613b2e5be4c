package model

import "time"

// User is owned by the auth component; the feed core only reads ID and
// Username.
type User struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	Username     string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(255)"`
	PasswordHash string `gorm:"type:varchar(128);not null"`
	CreatedAt    time.Time
}

func (User) TableName() string { return "users" }
