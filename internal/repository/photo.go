package repository

import (
	"context"

	"dating-app-backend/internal/models"
)

// GetPhoto retrieves a photo by ID
func (r *DatingRepository) GetPhoto(ctx context.Context, id int) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&photo).Error
	if err != nil {
		return nil, lookupErr(err, "photo")
	}
	return &photo, nil
}

// GetMainPhotoForUser retrieves the photo a user marked as main
func (r *DatingRepository) GetMainPhotoForUser(ctx context.Context, userID int) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("is_main = ?", true).
		First(&photo).Error
	if err != nil {
		return nil, lookupErr(err, "main photo")
	}
	return &photo, nil
}
