package repositories

import (
	"github.com/quangdm-dev/socialnews-backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	// Toggle flips the user's like on a post and returns the new state
	// with the post's like count.
	Toggle(postID, userID string) (*models.ToggleLikeResult, error)
	HasUserLikedPost(postID, userID string) (bool, error)
	CountByPostID(postID string) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// Toggle deletes the like row if present, creates it otherwise, and counts
// inside one transaction so concurrent toggles cannot double-insert.
func (r *PostgresLikeRepository) Toggle(postID, userID string) (*models.ToggleLikeResult, error) {
	var result models.ToggleLikeResult
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(&models.Like{PostID: postID, UserID: userID}).Error; err != nil {
				return err
			}
			result.IsLiked = true
		}

		return tx.Model(&models.Like{}).
			Where("post_id = ?", postID).
			Count(&result.LikeCount).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(postID, userID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByPostID retrieves the count of likes for a specific post
func (r *PostgresLikeRepository) CountByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
