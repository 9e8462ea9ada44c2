package repository

import (
	"context"
	"errors"
	"fmt"

	"dating-app-backend/internal/models"
	"dating-app-backend/internal/pagination"

	"gorm.io/gorm"
)

// GetUser retrieves a user by ID with their photos
func (r *DatingRepository) GetUser(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Photos").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username with their photos
func (r *DatingRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Photos").
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	return &user, nil
}

// GetUsers returns one page of the users visible to params.UserID.
//
// Stages are composed in a fixed order: exclude self, gender, likers,
// likees, age window, ordering. Nothing runs against the store until the
// pagination helper counts and fetches.
func (r *DatingRepository) GetUsers(ctx context.Context, params UserParams) (*pagination.PagedList[models.User], error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	query = query.Where("id <> ?", params.UserID)

	if params.Gender != "" {
		query = query.Where("gender = ?", params.Gender)
	}

	if params.Likers {
		likerIDs, err := r.GetUserLikes(ctx, params.UserID, true)
		if err != nil {
			return nil, err
		}
		query = query.Where("id IN ?", likerIDs)
	}

	if params.Likees {
		likeeIDs, err := r.GetUserLikes(ctx, params.UserID, false)
		if err != nil {
			return nil, err
		}
		query = query.Where("id IN ?", likeeIDs)
	}

	if params.MinAge != DefaultMinAge || params.MaxAge != DefaultMaxAge {
		today := r.today()
		minDate := today.AddDate(-params.MaxAge-1, 0, 0)
		maxDate := today.AddDate(-params.MinAge, 0, 0)
		query = query.Where("date_of_birth >= ? AND date_of_birth <= ?", minDate, maxDate)
	}

	if params.OrderBy == OrderByCreated {
		query = query.Order("created DESC")
	} else {
		query = query.Order("last_active DESC")
	}
	query = query.Order("id DESC")

	return pagination.Create[models.User](ctx, query, params.PageNumber, params.PageSize, withPhotos)
}

// GetUserLikes returns the IDs of the users who liked id (likers) or of the
// users id liked (likees).
func (r *DatingRepository) GetUserLikes(ctx context.Context, id int, likers bool) ([]int, error) {
	relation := "Likees"
	if likers {
		relation = "Likers"
	}

	var user models.User
	err := r.db.WithContext(ctx).
		Preload(relation).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, lookupErr(err, "user")
	}

	ids := []int{}
	if likers {
		for _, like := range user.Likers {
			if like.LikeeID == id {
				ids = append(ids, like.LikerID)
			}
		}
		return ids, nil
	}

	for _, like := range user.Likees {
		if like.LikerID == id {
			ids = append(ids, like.LikeeID)
		}
	}
	return ids, nil
}

// UsernameExists checks if a username is already taken
func (r *DatingRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var user models.User
	err := r.db.WithContext(ctx).Select("id").Where("username = ?", username).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return true, nil
}

func withPhotos(db *gorm.DB) *gorm.DB {
	return db.Preload("Photos")
}
