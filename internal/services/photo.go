package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"dating-app-backend/internal/apperr"
	"dating-app-backend/internal/dto"
	"dating-app-backend/internal/models"
	"dating-app-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const defaultPhotoContentType = "image/jpeg"

// PhotoService handles photo-related business logic
type PhotoService struct {
	store   *repository.Store
	storage PhotoStorage
}

// NewPhotoService creates a new photo service
func NewPhotoService(store *repository.Store, storage PhotoStorage) *PhotoService {
	return &PhotoService{store: store, storage: storage}
}

// GetPhoto returns a single photo
func (s *PhotoService) GetPhoto(ctx context.Context, id int) (*dto.PhotoForReturn, error) {
	photo, err := s.store.Repository().GetPhoto(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Photo")
	}

	out, err := dto.ToPhotoForReturn(photo)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// AddPhotoForUser records a new photo and returns an upload URL for its
// bytes. A user's first photo becomes their main photo.
func (s *PhotoService) AddPhotoForUser(ctx context.Context, userID int, req dto.PhotoForCreation) (*dto.PhotoUpload, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	repo := s.store.Repository()
	user, err := repo.GetUser(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User")
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = defaultPhotoContentType
	}

	// Key: users/{user_id}/{uuid}{ext}
	key := fmt.Sprintf("users/%d/%s%s", userID, uuid.New().String(), strings.ToLower(path.Ext(req.Filename)))

	uploadURL, expires, err := s.storage.PresignUpload(ctx, key, contentType)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	photo := &models.Photo{
		URL:         s.storage.URL(key),
		Description: req.Description,
		DateAdded:   s.store.Now(),
		IsMain:      user.MainPhoto() == nil,
		PublicID:    key,
		UserID:      userID,
	}

	repo.Add(photo)
	saved, err := repo.SaveAll(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !saved {
		return nil, apperr.BadRequest("Could not add the photo")
	}

	out, err := dto.ToPhotoForReturn(photo)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	log.Info().Int("user_id", userID).Int("photo_id", photo.ID).Str("key", key).Msg("Photo added")

	return &dto.PhotoUpload{
		Photo:     *out,
		UploadURL: uploadURL,
		ExpiresIn: int(expires.Seconds()),
	}, nil
}

// SetMainPhoto makes photoID the user's main photo
func (s *PhotoService) SetMainPhoto(ctx context.Context, userID, photoID int) error {
	repo := s.store.Repository()

	photo, err := s.ownedPhoto(ctx, repo, userID, photoID)
	if err != nil {
		return err
	}
	if photo.IsMain {
		return apperr.BadRequest("This is already the main photo")
	}

	current, err := repo.GetMainPhotoForUser(ctx, userID)
	switch {
	case err == nil:
		current.IsMain = false
		repo.Update(current)
	case !isNotFound(err):
		return apperr.Internal(err)
	}

	photo.IsMain = true
	repo.Update(photo)

	saved, err := repo.SaveAll(ctx)
	if err != nil {
		return apperr.Internal(err)
	}
	if !saved {
		return apperr.BadRequest("Could not set photo to main")
	}
	return nil
}

// DeletePhoto removes a photo and its stored bytes. The main photo cannot
// be deleted.
func (s *PhotoService) DeletePhoto(ctx context.Context, userID, photoID int) error {
	repo := s.store.Repository()

	photo, err := s.ownedPhoto(ctx, repo, userID, photoID)
	if err != nil {
		return err
	}
	if photo.IsMain {
		return apperr.BadRequest("You cannot delete your main photo")
	}

	if photo.PublicID != "" {
		if err := s.storage.Remove(ctx, photo.PublicID); err != nil {
			return apperr.Internal(err)
		}
	}

	repo.Delete(photo)
	saved, err := repo.SaveAll(ctx)
	if err != nil {
		return apperr.Internal(err)
	}
	if !saved {
		return apperr.BadRequest("Failed to delete the photo")
	}

	log.Info().Int("user_id", userID).Int("photo_id", photoID).Msg("Photo deleted")
	return nil
}

// ownedPhoto loads photoID and checks that it belongs to userID
func (s *PhotoService) ownedPhoto(ctx context.Context, repo *repository.DatingRepository, userID, photoID int) (*models.Photo, error) {
	user, err := repo.GetUser(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User")
	}

	owned := false
	for _, p := range user.Photos {
		if p.ID == photoID {
			owned = true
			break
		}
	}
	if !owned {
		return nil, apperr.Unauthorized("Photo does not belong to this user")
	}

	photo, err := repo.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, lookupError(err, "Photo")
	}
	return photo, nil
}
