package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/quangdm-dev/socialnews-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrPostNotFound is returned when the referenced post does not exist
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the read/counter surface of the content store the
// pipeline consumes. Posts themselves are owned elsewhere.
type PostRepository interface {
	GetPostByPostID(ctx context.Context, postID string) (*models.Post, error)
	IncrementLikesCount(ctx context.Context, postID string) error
	DecrementLikesCount(ctx context.Context, postID string) error
	IncrementCommentsCount(ctx context.Context, postID string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// GetPostByPostID retrieves a post by its uuid
func (r *MongoPostRepository) GetPostByPostID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"post_id": postID}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// IncrementLikesCount increments the likes count of a post
func (r *MongoPostRepository) IncrementLikesCount(ctx context.Context, postID string) error {
	return r.updateCount(ctx, postID, "likes_count", 1)
}

// DecrementLikesCount decrements the likes count of a post
func (r *MongoPostRepository) DecrementLikesCount(ctx context.Context, postID string) error {
	return r.updateCount(ctx, postID, "likes_count", -1)
}

// IncrementCommentsCount increments the comments count of a post
func (r *MongoPostRepository) IncrementCommentsCount(ctx context.Context, postID string) error {
	return r.updateCount(ctx, postID, "comments_count", 1)
}

func (r *MongoPostRepository) updateCount(ctx context.Context, postID, field string, delta int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"post_id": postID},
		bson.M{
			"$inc": bson.M{field: delta},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	return err
}
