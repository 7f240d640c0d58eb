package model

import (
	"time"
)

// PostModel mirrors the 'posts' table. CreatorID references users.id.
type PostModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"type:varchar(255);not null"`
	CreatorID int64  `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Creator *UserModel `gorm:"foreignKey:CreatorID"`
}

// TableName explicitly sets the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}
