package post

import (
	"time"

	"gorm.io/datatypes"
)

type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null" json:"userId"`
	PostType  string         `gorm:"column:post_type;size:30;not null;default:text" json:"postType"`
	Content   string         `gorm:"not null" json:"content"`
	Mentions  datatypes.JSON `gorm:"not null;default:'[]'" json:"mentions"`
	ImageURL  string         `gorm:"size:500" json:"imageUrl,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (Post) TableName() string {
	return "posts"
}

// FeedItem is a post with its author joined in.
type FeedItem struct {
	Post
	AuthorName  string `json:"authorName"`
	AuthorImage string `json:"authorImage,omitempty"`
}
