package repositories

import (
	"time"

	"github.com/anonto42/tweeter/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	CreateTweet(tweet *models.Tweet) error
	GetFeed(subscriberID uint) ([]models.Tweet, error)
}

// PostgresTweetRepository implements TweetRepository over gorm
type PostgresTweetRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostgresTweetRepository(db *gorm.DB, now func() time.Time) *PostgresTweetRepository {
	return &PostgresTweetRepository{db: db, now: now}
}

// CreateTweet overwrites TweetedAt with the server clock before inserting.
func (r *PostgresTweetRepository) CreateTweet(tweet *models.Tweet) error {
	tweet.TweetedAt = stamp(r.now)
	return r.db.Omit(clause.Associations).Create(tweet).Error
}

// GetFeed returns, newest first, every tweet whose author the subscriber
// follows. The IN sub-select yields each tweet once even when the follow
// edge is duplicated.
func (r *PostgresTweetRepository) GetFeed(subscriberID uint) ([]models.Tweet, error) {
	tweets := []models.Tweet{}
	err := r.db.Where("tweeted_by IN (?)",
		r.db.Model(&models.Follower{}).Select("user_id").Where("follower_id = ?", subscriberID),
	).Order("tweeted_at DESC").Order("id DESC").Find(&tweets).Error
	return tweets, err
}
