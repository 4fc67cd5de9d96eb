package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
)

// FollowRepository defines the interface for follow-edge operations.
// Both unsubscribe and remove-follower go through DeleteEdge; only which
// side of the pair comes from the caller identity differs.
type FollowRepository interface {
	CreateEdge(follow *models.Follow) error
	DeleteEdge(subscriberID, targetID uint) error
	IsFollowing(subscriberID, targetID uint) (bool, error)
	GetFollowers(userID uint) ([]models.User, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetFollowingIDs(userID uint) ([]uint, error)
	GetFollowersCount(userID uint) (int64, error)
	GetFollowingCount(userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateEdge inserts a follow edge. The unique (subscriber, target) index
// rejects duplicates.
func (r *PostgresFollowRepository) CreateEdge(follow *models.Follow) error {
	if err := r.db.Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.ErrConflict
		}
		return err
	}
	return nil
}

// DeleteEdge removes the edge matching (subscriber, target)
func (r *PostgresFollowRepository) DeleteEdge(subscriberID, targetID uint) error {
	res := r.db.Where("subscriber_id = ? AND target_id = ?", subscriberID, targetID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// IsFollowing reports whether an edge (subscriber, target) exists
func (r *PostgresFollowRepository) IsFollowing(subscriberID, targetID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("subscriber_id = ? AND target_id = ?", subscriberID, targetID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowers returns the accounts following userID
func (r *PostgresFollowRepository) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("subscriber_id").Where("target_id = ?", userID),
	).Find(&users).Error
	return users, err
}

// GetFollowing returns the accounts userID follows
func (r *PostgresFollowRepository) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("target_id").Where("subscriber_id = ?", userID),
	).Find(&users).Error
	return users, err
}

// GetFollowingIDs returns the ids of accounts userID follows
func (r *PostgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("subscriber_id = ?", userID).Pluck("target_id", &ids).Error
	return ids, err
}

// GetFollowersCount returns the number of inbound edges for userID
func (r *PostgresFollowRepository) GetFollowersCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("target_id = ?", userID).Count(&count).Error
	return count, err
}

// GetFollowingCount returns the number of outbound edges for userID
func (r *PostgresFollowRepository) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("subscriber_id = ?", userID).Count(&count).Error
	return count, err
}
