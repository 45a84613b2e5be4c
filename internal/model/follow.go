package model

import (
	"time"
)

// Follow is a directed edge: UserID wants AuthorID's posts in their
// personalized feed.
type Follow struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	UserID   string `gorm:"type:varchar(36);index:idx_follow_user;index:idx_follow_pair,unique;not null"`
	AuthorID string `gorm:"type:varchar(36);not null;index:idx_follow_pair,unique"`
	// composite unique key idx_follow_pair = (user_id, author_id)
	// keeps concurrent follows from producing duplicate edges
	CreatedAt time.Time
}

func (Follow) TableName() string { return "follows" }
