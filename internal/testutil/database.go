// Package testutil holds shared database helpers for tests. Nothing here
// carries business logic.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"dating-app-backend/internal/models"
	"dating-app-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Now is the fixed clock tests run against
var Now = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

// Clock returns Now
func Clock() time.Time { return Now }

// NewTestDB opens a private in-memory SQLite database with the schema
// migrated. It is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database survives across pool connections; one
	// connection keeps writes serialized.
	dsn := fmt.Sprintf("file:testonlydb_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.AutoMigrate(db))

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// NewTestStore returns a store over a fresh database and the fixed clock
func NewTestStore(t *testing.T) (*repository.Store, *gorm.DB) {
	t.Helper()
	db := NewTestDB(t)
	return repository.NewStore(db, repository.WithClock(Clock)), db
}

// UserOption adjusts a user before it is inserted
type UserOption func(*models.User)

// WithGender sets the user's gender
func WithGender(gender string) UserOption {
	return func(u *models.User) { u.Gender = gender }
}

// BornOn sets the user's date of birth
func BornOn(dob time.Time) UserOption {
	return func(u *models.User) { u.DateOfBirth = dob }
}

// CreatedAt sets both the creation and last-active times
func CreatedAt(at time.Time) UserOption {
	return func(u *models.User) {
		u.Created = at
		u.LastActive = at
	}
}

// ActiveAt sets the last-active time
func ActiveAt(at time.Time) UserOption {
	return func(u *models.User) { u.LastActive = at }
}

// CreateUser inserts a user. Defaults: female, 30 years old, created an
// hour before Now.
func CreateUser(t *testing.T, db *gorm.DB, username string, opts ...UserOption) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		PasswordHash: []byte("not-a-real-hash"),
		Gender:       "female",
		KnownAs:      username,
		DateOfBirth:  time.Date(1994, time.January, 1, 0, 0, 0, 0, time.UTC),
		Created:      Now.Add(-time.Hour),
		LastActive:   Now.Add(-time.Hour),
		City:         "Utrecht",
		Country:      "Netherlands",
	}
	for _, opt := range opts {
		opt(user)
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreatePhoto inserts a photo for userID
func CreatePhoto(t *testing.T, db *gorm.DB, userID int, isMain bool) *models.Photo {
	t.Helper()
	photo := &models.Photo{
		URL:       fmt.Sprintf("https://photos.example.com/users/%d/%s.jpg", userID, uuid.NewString()),
		DateAdded: Now,
		IsMain:    isMain,
		PublicID:  fmt.Sprintf("users/%d/%s.jpg", userID, uuid.NewString()),
		UserID:    userID,
	}
	require.NoError(t, db.Create(photo).Error)
	return photo
}

// CreateLike inserts a like from likerID to likeeID
func CreateLike(t *testing.T, db *gorm.DB, likerID, likeeID int) *models.Like {
	t.Helper()
	like := &models.Like{LikerID: likerID, LikeeID: likeeID}
	require.NoError(t, db.Create(like).Error)
	return like
}

// CreateMessage inserts a message sent at the given time
func CreateMessage(t *testing.T, db *gorm.DB, senderID, recipientID int, content string, sent time.Time) *models.Message {
	t.Helper()
	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		MessageSent: sent,
	}
	require.NoError(t, db.Omit("Sender", "Recipient").Create(message).Error)
	return message
}
