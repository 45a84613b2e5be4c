package model

import "time"

// Post is the content unit. PubDate is set once at creation and never
// updated; every listing orders by (pub_date DESC, id DESC).
type Post struct {
	ID       string    `gorm:"primaryKey;type:varchar(36)"`
	Text     string    `gorm:"type:text;not null"`
	PubDate  time.Time `gorm:"index:idx_post_pub;not null"`
	AuthorID string    `gorm:"type:varchar(36);index:idx_post_author;not null"`
	Author   User      `gorm:"constraint:OnDelete:CASCADE"`
	GroupID  *string   `gorm:"type:varchar(36);index:idx_post_group"`
	Group    *Group    `gorm:"constraint:OnDelete:SET NULL"`
	// ImageKey references an object in the blob store; empty means no image.
	ImageKey string `gorm:"type:varchar(128)"`
}

func (Post) TableName() string { return "posts" }
