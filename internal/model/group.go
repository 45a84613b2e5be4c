package model

// Group is a topic a post can be filed under. Created administratively
// (cmd/seed); read-only everywhere else.
type Group struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Title       string `gorm:"type:varchar(200);not null"`
	Slug        string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

func (Group) TableName() string { return "groups" }
