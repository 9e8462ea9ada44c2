package services

import (
	"context"
	"errors"
	"fmt"

	"dating-app-backend/internal/apperr"
	"dating-app-backend/internal/dto"
	"dating-app-backend/internal/pagination"
	"dating-app-backend/internal/repository"
)

// UserService handles user-related business logic
type UserService struct {
	store *repository.Store
}

// NewUserService creates a new user service
func NewUserService(store *repository.Store) *UserService {
	return &UserService{store: store}
}

// ListUsers returns a page of members for params.UserID to browse. Without
// an explicit gender the listing shows the opposite gender of the caller.
func (s *UserService) ListUsers(ctx context.Context, params repository.UserParams) (*pagination.PagedList[dto.UserForList], error) {
	repo := s.store.Repository()

	if params.Gender == "" {
		current, err := repo.GetUser(ctx, params.UserID)
		if err != nil {
			return nil, lookupError(err, "User")
		}
		params.Gender = oppositeGender(current.Gender)
	}

	if params.MinAge > params.MaxAge {
		return nil, apperr.BadRequest("minAge must not exceed maxAge")
	}

	page, err := repo.GetUsers(ctx, params)
	if err != nil {
		return nil, lookupError(err, "User")
	}

	today := s.store.Now()
	items := make([]dto.UserForList, 0, len(page.Items))
	for i := range page.Items {
		listed, err := dto.ToUserForList(&page.Items[i], today)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		items = append(items, listed)
	}

	return pagination.New(items, page.TotalCount, page.CurrentPage, page.PageSize), nil
}

// GetUser returns a member's full profile
func (s *UserService) GetUser(ctx context.Context, id int) (*dto.UserForDetailed, error) {
	user, err := s.store.Repository().GetUser(ctx, id)
	if err != nil {
		return nil, lookupError(err, "User")
	}

	detailed, err := dto.ToUserForDetailed(user, s.store.Now())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return detailed, nil
}

// UpdateUser applies profile edits
func (s *UserService) UpdateUser(ctx context.Context, id int, update dto.UserForUpdate) error {
	repo := s.store.Repository()
	user, err := repo.GetUser(ctx, id)
	if err != nil {
		return lookupError(err, "User")
	}

	if err := dto.ApplyUserUpdate(user, update); err != nil {
		return apperr.Internal(err)
	}

	repo.Update(user)
	saved, err := repo.SaveAll(ctx)
	if err != nil {
		return apperr.Internal(err)
	}
	if !saved {
		return apperr.Internal(fmt.Errorf("updating user %d failed on save", id))
	}
	return nil
}

// UpdatePushToken stores or clears the device token used for push
func (s *UserService) UpdatePushToken(ctx context.Context, id int, token *string) error {
	repo := s.store.Repository()
	user, err := repo.GetUser(ctx, id)
	if err != nil {
		return lookupError(err, "User")
	}

	if token != nil && *token == "" {
		token = nil
	}
	user.PushToken = token

	repo.Update(user)
	if _, err := repo.SaveAll(ctx); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// TouchLastActive records that the user was just seen
func (s *UserService) TouchLastActive(ctx context.Context, id int) error {
	repo := s.store.Repository()
	user, err := repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	user.LastActive = s.store.Now()
	repo.Update(user)
	_, err = repo.SaveAll(ctx)
	return err
}

func oppositeGender(gender string) string {
	switch gender {
	case "male":
		return "female"
	case "female":
		return "male"
	default:
		return ""
	}
}
