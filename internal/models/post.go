package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a post document stored in MongoDB. The pipeline only reads
// title/author and maintains the denormalized interaction counters.
type Post struct {
	ID            primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	PostID        string             `json:"post_id" bson:"post_id"` // uuid shared with the relational tables
	Title         string             `json:"title" bson:"title"`
	Author        string             `json:"author" bson:"author"` // provider UID of the post owner
	LikesCount    int                `json:"likes_count" bson:"likes_count"`
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}
