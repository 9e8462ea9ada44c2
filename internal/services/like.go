package services

import (
	"context"
	"errors"
	"fmt"

	"dating-app-backend/internal/apperr"
	"dating-app-backend/internal/models"
	"dating-app-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// LikeService records that one member likes another
type LikeService struct {
	store    *repository.Store
	notifier *Notifier
}

// NewLikeService creates a new like service
func NewLikeService(store *repository.Store, notifier *Notifier) *LikeService {
	return &LikeService{store: store, notifier: notifier}
}

// LikeUser records that userID likes recipientID and tells the recipient.
func (s *LikeService) LikeUser(ctx context.Context, userID, recipientID int) error {
	if userID == recipientID {
		return apperr.BadRequest("You cannot like yourself")
	}

	repo := s.store.Repository()

	_, err := repo.GetLike(ctx, userID, recipientID)
	switch {
	case err == nil:
		return apperr.Conflict("You already like this user")
	case errors.Is(err, repository.ErrNotUnique):
		log.Warn().Int("liker_id", userID).Int("likee_id", recipientID).Msg("Duplicate like rows")
		return apperr.Conflict("You already like this user")
	case !errors.Is(err, repository.ErrNotFound):
		return apperr.Internal(err)
	}

	liker, err := repo.GetUser(ctx, userID)
	if err != nil {
		return lookupError(err, "User")
	}
	if _, err := repo.GetUser(ctx, recipientID); err != nil {
		return lookupError(err, "User")
	}

	repo.Add(&models.Like{LikerID: userID, LikeeID: recipientID})
	saved, err := repo.SaveAll(ctx)
	if err != nil {
		return apperr.Internal(err)
	}
	if !saved {
		return apperr.BadRequest("Failed to like user")
	}

	log.Info().Int("liker_id", userID).Int("likee_id", recipientID).Msg("User liked")

	s.notifier.Notify(ctx, recipientID, WSMessage{
		Type:     EventNewLike,
		SenderID: userID,
		Message:  fmt.Sprintf("%s likes you", liker.KnownAs),
	})
	return nil
}
