package dto

import (
	"fmt"
	"time"

	"dating-app-backend/internal/models"

	"github.com/jinzhu/copier"
)

// PhotoForDetailed is a photo inside a user's gallery
type PhotoForDetailed struct {
	ID          int       `json:"id"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	DateAdded   time.Time `json:"dateAdded"`
	IsMain      bool      `json:"isMain"`
}

// PhotoForCreation asks for an upload slot for a new photo
type PhotoForCreation struct {
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"contentType" validate:"omitempty,startswith=image/"`
	Description string `json:"description" validate:"max=500"`
}

// PhotoForReturn is a single photo
type PhotoForReturn struct {
	ID          int       `json:"id"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	DateAdded   time.Time `json:"dateAdded"`
	IsMain      bool      `json:"isMain"`
	PublicID    string    `json:"publicId"`
}

// PhotoUpload is returned when a photo slot is created; the client PUTs the
// image bytes to UploadURL before ExpiresIn seconds elapse.
type PhotoUpload struct {
	Photo     PhotoForReturn `json:"photo"`
	UploadURL string         `json:"uploadUrl"`
	ExpiresIn int            `json:"expiresIn"`
}

// ToPhotoForReturn maps a photo
func ToPhotoForReturn(photo *models.Photo) (*PhotoForReturn, error) {
	out := &PhotoForReturn{}
	if err := copier.Copy(out, photo); err != nil {
		return nil, fmt.Errorf("failed to map photo %d: %w", photo.ID, err)
	}
	return out, nil
}
