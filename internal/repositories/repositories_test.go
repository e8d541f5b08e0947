package repositories

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/tweeter/backend/internal/models"
	"github.com/anonto42/tweeter/backend/pkg/config"
	"gorm.io/gorm"
)

// setupTestDB opens a migrated sqlite database in a per-test directory.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBDriver:       config.DriverSQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "test.db"),
		DBMaxOpenConns: 4,
		DBMaxIdleConns: 4,
	}
	db, err := config.OpenDatabase(cfg)
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}
	t.Cleanup(db.CloseDB)
	if err := config.Migrate(db.Gorm); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db.Gorm
}

// fakeClock advances one second on every call.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func createUser(t *testing.T, s *Store, handle string) *models.User {
	t.Helper()
	user := &models.User{Handle: handle, Name: handle, Email: handle + "@example.com", Password: "hash"}
	err := s.WithTx(context.Background(), func(r *Repositories) error {
		return r.Users.CreateUser(user)
	})
	if err != nil {
		t.Fatalf("CreateUser(%s) error = %v", handle, err)
	}
	return user
}

func TestCreateAndGetUser(t *testing.T) {
	s := NewStore(setupTestDB(t))
	ctx := context.Background()

	created := createUser(t, s, "alice")
	if created.ID == 0 {
		t.Fatal("CreateUser() left ID at 0")
	}

	err := s.WithTx(ctx, func(r *Repositories) error {
		byID, err := r.Users.GetUserByID(created.ID)
		if err != nil {
			return err
		}
		if byID.Email != "alice@example.com" || byID.Handle != "alice" {
			t.Errorf("GetUserByID() = %+v", byID)
		}
		byEmail, err := r.Users.GetUserByEmail("alice@example.com")
		if err != nil {
			return err
		}
		if byEmail.ID != created.ID {
			t.Errorf("GetUserByEmail() id = %d, want %d", byEmail.ID, created.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}

	t.Run("not found", func(t *testing.T) {
		err := s.WithTx(ctx, func(r *Repositories) error {
			_, err := r.Users.GetUserByID(created.ID + 100)
			return err
		})
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("GetUserByID(missing) error = %v, want ErrRecordNotFound", err)
		}
		err = s.WithTx(ctx, func(r *Repositories) error {
			_, err := r.Users.GetUserByEmail("nobody@example.com")
			return err
		})
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("GetUserByEmail(missing) error = %v, want ErrRecordNotFound", err)
		}
	})
}

func TestCreateUserDuplicates(t *testing.T) {
	s := NewStore(setupTestDB(t))
	createUser(t, s, "alice")

	tests := []struct {
		name string
		user models.User
	}{
		{"same handle", models.User{Handle: "alice", Name: "A", Email: "other@example.com", Password: "x"}},
		{"same email", models.User{Handle: "alice2", Name: "A", Email: "alice@example.com", Password: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.user
			err := s.WithTx(context.Background(), func(r *Repositories) error {
				return r.Users.CreateUser(&user)
			})
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				t.Errorf("CreateUser() error = %v, want ErrDuplicatedKey", err)
			}
		})
	}

	var count int64
	s.db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("users count = %d, want 1", count)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	db := setupTestDB(t)
	s := NewStore(db)
	alice := createUser(t, s, "alice")

	boom := errors.New("boom")
	err := s.WithTx(context.Background(), func(r *Repositories) error {
		if err := r.Tweets.CreateTweet(&models.Tweet{Text: "lost", TweetedBy: alice.ID}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want boom", err)
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Error("WithTx() swallowed the panic")
			}
		}()
		s.WithTx(context.Background(), func(r *Repositories) error {
			if err := r.Tweets.CreateTweet(&models.Tweet{Text: "also lost", TweetedBy: alice.ID}); err != nil {
				return err
			}
			panic("fault")
		})
	}()

	var count int64
	db.Model(&models.Tweet{}).Count(&count)
	if count != 0 {
		t.Errorf("tweets count = %d after rollback, want 0", count)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	s := NewStore(setupTestDB(t))
	alice := createUser(t, s, "alice")

	err := s.WithTx(context.Background(), func(r *Repositories) error {
		return r.Tweets.CreateTweet(&models.Tweet{Text: "orphan", TweetedBy: alice.ID + 100})
	})
	if err == nil {
		t.Error("CreateTweet() with unknown author: expected error")
	}

	err = s.WithTx(context.Background(), func(r *Repositories) error {
		return r.Followers.CreateFollower(&models.Follower{UserID: alice.ID + 100, FollowerID: alice.ID})
	})
	if err == nil {
		t.Error("CreateFollower() with unknown target: expected error")
	}
}

func TestTimestampsAreServerAssigned(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStoreWithClock(setupTestDB(t), clock.Now)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	client := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	first := &models.Tweet{Text: "one", TweetedBy: alice.ID, TweetedAt: client}
	second := &models.Tweet{Text: "two", TweetedBy: alice.ID}
	edge := &models.Follower{UserID: alice.ID, FollowerID: bob.ID, FollowedAt: client}

	err := s.WithTx(context.Background(), func(r *Repositories) error {
		if err := r.Tweets.CreateTweet(first); err != nil {
			return err
		}
		if err := r.Tweets.CreateTweet(second); err != nil {
			return err
		}
		return r.Followers.CreateFollower(edge)
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}

	if first.TweetedAt.Equal(client) || edge.FollowedAt.Equal(client) {
		t.Error("client-supplied timestamp was kept")
	}
	if !second.TweetedAt.After(first.TweetedAt) {
		t.Errorf("tweetedAt not increasing: %v then %v", first.TweetedAt, second.TweetedAt)
	}
	if first.TweetedAt.Location() != time.UTC {
		t.Errorf("tweetedAt location = %v, want UTC", first.TweetedAt.Location())
	}
}

func TestGetFeed(t *testing.T) {
	s := NewStore(setupTestDB(t))
	ctx := context.Background()
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")
	carol := createUser(t, s, "carol")

	err := s.WithTx(ctx, func(r *Repositories) error {
		for _, tw := range []*models.Tweet{
			{Text: "bob 1", TweetedBy: bob.ID},
			{Text: "carol 1", TweetedBy: carol.ID},
			{Text: "bob 2", TweetedBy: bob.ID},
			{Text: "alice 1", TweetedBy: alice.ID},
		} {
			if err := r.Tweets.CreateTweet(tw); err != nil {
				return err
			}
		}
		// duplicate edge on purpose
		for i := 0; i < 2; i++ {
			if err := r.Followers.CreateFollower(&models.Follower{UserID: bob.ID, FollowerID: alice.ID}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed error = %v", err)
	}

	var feed []models.Tweet
	var edges []models.Follower
	err = s.WithTx(ctx, func(r *Repositories) error {
		var err error
		if feed, err = r.Tweets.GetFeed(alice.ID); err != nil {
			return err
		}
		edges, err = r.Followers.GetFollowersBySubscriber(alice.ID)
		return err
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}

	if len(edges) != 2 {
		t.Errorf("GetFollowersBySubscriber() returned %d edges, want 2", len(edges))
	}
	if len(feed) != 2 {
		t.Fatalf("GetFeed() returned %d tweets, want 2: %+v", len(feed), feed)
	}
	for _, tw := range feed {
		if tw.TweetedBy != bob.ID {
			t.Errorf("GetFeed() included tweet by %d: %q", tw.TweetedBy, tw.Text)
		}
	}
	if feed[0].Text != "bob 2" || feed[1].Text != "bob 1" {
		t.Errorf("GetFeed() order = [%q %q], want newest first", feed[0].Text, feed[1].Text)
	}

	t.Run("follows nobody", func(t *testing.T) {
		err := s.WithTx(ctx, func(r *Repositories) error {
			feed, err := r.Tweets.GetFeed(carol.ID)
			if err != nil {
				return err
			}
			if feed == nil || len(feed) != 0 {
				t.Errorf("GetFeed() = %#v, want empty non-nil slice", feed)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("WithTx() error = %v", err)
		}
	})
}
