package repositories

import (
	"time"

	"github.com/anonto42/tweeter/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowerRepository defines the interface for follow-edge data operations
type FollowerRepository interface {
	CreateFollower(follower *models.Follower) error
	GetFollowersBySubscriber(subscriberID uint) ([]models.Follower, error)
}

// PostgresFollowerRepository implements FollowerRepository over gorm
type PostgresFollowerRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostgresFollowerRepository(db *gorm.DB, now func() time.Time) *PostgresFollowerRepository {
	return &PostgresFollowerRepository{db: db, now: now}
}

// CreateFollower overwrites FollowedAt with the server clock before inserting.
// No uniqueness check: following twice creates two edges.
func (r *PostgresFollowerRepository) CreateFollower(follower *models.Follower) error {
	follower.FollowedAt = stamp(r.now)
	return r.db.Omit(clause.Associations).Create(follower).Error
}

// GetFollowersBySubscriber lists the edges created by subscriberID, oldest first.
func (r *PostgresFollowerRepository) GetFollowersBySubscriber(subscriberID uint) ([]models.Follower, error) {
	followers := []models.Follower{}
	err := r.db.Where("follower_id = ?", subscriberID).Order("id").Find(&followers).Error
	return followers, err
}
