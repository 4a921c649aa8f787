package models

import "gorm.io/gorm"

// Like represents a like on a post
type Like struct {
	gorm.Model
	PostID string `json:"post_id" gorm:"type:uuid;uniqueIndex:idx_likes_post_user"`
	UserID string `json:"user_id" gorm:"type:uuid;uniqueIndex:idx_likes_post_user"` // provider UID of the user who liked the post
}

// ToggleLikeRequest defines the request body for toggling a like
type ToggleLikeRequest struct {
	PostID string `json:"post_id" validate:"required,uuid"`
}

// ToggleLikeResult is the outcome of a like toggle
type ToggleLikeResult struct {
	IsLiked   bool  `json:"is_liked"`
	LikeCount int64 `json:"like_count"`
}
