package repository

import (
	"errors"
	"fmt"
	"time"

	"dating-app-backend/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned by point lookups that match no row.
	ErrNotFound = errors.New("not found")
	// ErrNotUnique is returned when a lookup expected to match at most one
	// row matches several.
	ErrNotUnique = errors.New("more than one row matches a unique key")
)

// Store is the process-wide handle on the database. It is safe for
// concurrent use; the repositories it hands out are not.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces the wall clock used for "today" and for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a new store over an open gorm connection
func NewStore(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repository returns a request-scoped repository with an empty unit of work.
func (s *Store) Repository() *DatingRepository {
	return &DatingRepository{db: s.db, now: s.now}
}

// Now returns the store clock's current time in UTC
func (s *Store) Now() time.Time {
	return s.now().UTC()
}

// AutoMigrate creates or updates the tables of every entity.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Photo{}, &models.Like{}, &models.Message{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// DatingRepository is the single seam through which entities are read and
// written. Reads hit the store immediately; writes are staged until SaveAll.
type DatingRepository struct {
	db      *gorm.DB
	now     func() time.Time
	pending []change
}

// today returns the current UTC date at midnight
func (r *DatingRepository) today() time.Time {
	now := r.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// lookupErr maps gorm's missing-row error to ErrNotFound.
func lookupErr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
