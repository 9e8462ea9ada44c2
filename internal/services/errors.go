package services

import (
	"errors"

	"dating-app-backend/internal/apperr"
	"dating-app-backend/internal/repository"
)

// lookupError translates a repository lookup failure for the HTTP layer.
func lookupError(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(resource).WithCause(err)
	}
	return apperr.Internal(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
