package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repositories groups the repositories bound to one transaction.
type Repositories struct {
	Users     UserRepository
	Tweets    TweetRepository
	Followers FollowerRepository
}

// TxRunner runs fn inside a transaction. It commits when fn returns nil and
// rolls back when fn returns an error or panics.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(r *Repositories) error) error
}

// Store is the gorm-backed TxRunner.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore creates a Store stamping rows with the server clock.
func NewStore(db *gorm.DB) *Store {
	return NewStoreWithClock(db, time.Now)
}

// NewStoreWithClock creates a Store with a custom clock.
func NewStoreWithClock(db *gorm.DB, now func() time.Time) *Store {
	return &Store{db: db, now: now}
}

// WithTx binds the transaction to ctx so a cancelled request aborts its queries.
func (s *Store) WithTx(ctx context.Context, fn func(r *Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(s.repositories(tx))
	})
}

func (s *Store) repositories(tx *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewPostgresUserRepository(tx),
		Tweets:    NewPostgresTweetRepository(tx, s.now),
		Followers: NewPostgresFollowerRepository(tx, s.now),
	}
}

// stamp is the insert-time timestamp: UTC at the store's microsecond precision,
// so the value returned to clients matches what is persisted.
func stamp(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Microsecond)
}
