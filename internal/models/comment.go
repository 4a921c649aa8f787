package models

import "gorm.io/gorm"

// Comment represents a comment on a post
type Comment struct {
	gorm.Model
	PostID  string `json:"post_id" gorm:"type:uuid;index"`
	Author  string `json:"author" gorm:"type:uuid;index"` // provider UID of the commenting user
	Content string `json:"content"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	PostID  string `json:"post_id" validate:"required,uuid"`
	Content string `json:"content" validate:"required,min=1"`
}
