package repository

import (
	"context"
	"fmt"

	"dating-app-backend/internal/models"
)

// GetLike retrieves the like edge from userID to recipientID.
//
// The pair is a unique key; finding two rows is reported as ErrNotUnique
// rather than resolved by picking one.
func (r *DatingRepository) GetLike(ctx context.Context, userID, recipientID int) (*models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).
		Where("liker_id = ? AND likee_id = ?", userID, recipientID).
		Limit(2).
		Find(&likes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get like: %w", err)
	}

	switch len(likes) {
	case 0:
		return nil, fmt.Errorf("like %w", ErrNotFound)
	case 1:
		return &likes[0], nil
	default:
		return nil, fmt.Errorf("like %d->%d: %w", userID, recipientID, ErrNotUnique)
	}
}
