package post

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, post *Post) error
	ListFeed(ctx context.Context) ([]FeedItem, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, post *Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *repository) ListFeed(ctx context.Context) ([]FeedItem, error) {
	var items []FeedItem
	err := r.db.WithContext(ctx).
		Table("posts").
		Select("posts.*, users.name AS author_name, users.profile_image AS author_image").
		Joins("JOIN users ON users.id = posts.user_id").
		Order("posts.created_at DESC").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	return items, nil
}
