package post

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type CreatePostRequest struct {
	PostType string `json:"post_type" binding:"omitempty,oneof=text image celebration"`
	Content  string `json:"content" binding:"required"`
	Mentions []uint `json:"mentions"`
	ImageURL string `json:"image_url"`
}

type Service interface {
	Create(ctx context.Context, userID uint, req CreatePostRequest) (*Post, error)
	Feed(ctx context.Context) ([]FeedItem, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: zap.L().Named("post.service"),
	}
}

func (s *service) Create(ctx context.Context, userID uint, req CreatePostRequest) (*Post, error) {
	postType := req.PostType
	if postType == "" {
		postType = "text"
	}
	mentions := req.Mentions
	if mentions == nil {
		mentions = []uint{}
	}
	raw, err := json.Marshal(mentions)
	if err != nil {
		return nil, err
	}

	post := &Post{
		UserID:   userID,
		PostType: postType,
		Content:  req.Content,
		Mentions: datatypes.JSON(raw),
		ImageURL: req.ImageURL,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error("create post", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("post created", zap.Uint("post_id", post.ID), zap.Uint("user_id", userID))
	return post, nil
}

func (s *service) Feed(ctx context.Context) ([]FeedItem, error) {
	items, err := s.repo.ListFeed(ctx)
	if err != nil {
		s.logger.Error("list feed", zap.Error(err))
		return nil, err
	}
	return items, nil
}
