// Package dto holds the request and response shapes of the HTTP API and the
// mapping from entities to them.
package dto

import (
	"fmt"
	"time"

	"dating-app-backend/internal/models"

	"github.com/jinzhu/copier"
)

// UserForRegister is the body of a registration request
type UserForRegister struct {
	Username    string    `json:"username" validate:"required"`
	Password    string    `json:"password" validate:"required,min=4,max=8"`
	Gender      string    `json:"gender" validate:"omitempty,oneof=male female"`
	KnownAs     string    `json:"knownAs"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
}

// UserForLogin is the body of a login request
type UserForLogin struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserForUpdate carries the editable profile fields
type UserForUpdate struct {
	Introduction string `json:"introduction"`
	LookingFor   string `json:"lookingFor"`
	Interests    string `json:"interests"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

// UserForList is a user as shown in member lists
type UserForList struct {
	ID         int       `json:"id"`
	Username   string    `json:"username"`
	Gender     string    `json:"gender"`
	Age        int       `json:"age"`
	KnownAs    string    `json:"knownAs"`
	Created    time.Time `json:"created"`
	LastActive time.Time `json:"lastActive"`
	City       string    `json:"city"`
	Country    string    `json:"country"`
	PhotoURL   string    `json:"photoUrl"`
}

// UserForDetailed is a user with the profile text and photo gallery
type UserForDetailed struct {
	ID           int                `json:"id"`
	Username     string             `json:"username"`
	Gender       string             `json:"gender"`
	Age          int                `json:"age"`
	KnownAs      string             `json:"knownAs"`
	Created      time.Time          `json:"created"`
	LastActive   time.Time          `json:"lastActive"`
	Introduction string             `json:"introduction"`
	LookingFor   string             `json:"lookingFor"`
	Interests    string             `json:"interests"`
	City         string             `json:"city"`
	Country      string             `json:"country"`
	PhotoURL     string             `json:"photoUrl"`
	Photos       []PhotoForDetailed `json:"photos"`
}

// Age returns the number of whole years between dateOfBirth and today.
func Age(dateOfBirth, today time.Time) int {
	age := today.Year() - dateOfBirth.Year()
	if dateOfBirth.AddDate(age, 0, 0).After(today) {
		age--
	}
	return age
}

// ToUserForList maps a user for member lists
func ToUserForList(user *models.User, today time.Time) (UserForList, error) {
	var out UserForList
	if err := copier.Copy(&out, user); err != nil {
		return out, fmt.Errorf("failed to map user %d: %w", user.ID, err)
	}
	out.Age = Age(user.DateOfBirth, today)
	if main := user.MainPhoto(); main != nil {
		out.PhotoURL = main.URL
	}
	return out, nil
}

// ToUserForDetailed maps a user with their photos
func ToUserForDetailed(user *models.User, today time.Time) (*UserForDetailed, error) {
	out := &UserForDetailed{}
	if err := copier.Copy(out, user); err != nil {
		return nil, fmt.Errorf("failed to map user %d: %w", user.ID, err)
	}
	if out.Photos == nil {
		out.Photos = []PhotoForDetailed{}
	}
	out.Age = Age(user.DateOfBirth, today)
	if main := user.MainPhoto(); main != nil {
		out.PhotoURL = main.URL
	}
	return out, nil
}

// ApplyUserUpdate copies the editable fields onto user
func ApplyUserUpdate(user *models.User, update UserForUpdate) error {
	if err := copier.Copy(user, &update); err != nil {
		return fmt.Errorf("failed to apply update to user %d: %w", user.ID, err)
	}
	return nil
}
