package model

import "time"

// CommentMaxLen bounds comment text, counted in runes.
const CommentMaxLen = 200

type Comment struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	PostID   string `gorm:"type:varchar(36);index:idx_comment_post;not null"`
	Post     Post   `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID string `gorm:"type:varchar(36);not null"`
	Author   User   `gorm:"constraint:OnDelete:CASCADE"`
	Text     string `gorm:"type:varchar(200);not null"`
	Created  time.Time
}

func (Comment) TableName() string { return "comments" }
