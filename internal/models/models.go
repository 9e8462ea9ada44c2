package models

import "time"

// Entity is implemented by every type the repository can stage for
// persistence. The set is closed: only the types in this package satisfy it.
type Entity interface {
	entityName() string
}

// EntityName returns the logical name of a staged entity, for logging.
func EntityName(e Entity) string {
	return e.entityName()
}

// User represents a member of the dating site
type User struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:64;uniqueIndex;not null"`
	PasswordHash []byte    `json:"-"`
	Gender       string    `json:"gender" gorm:"size:16;index"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
	KnownAs      string    `json:"knownAs"`
	Created      time.Time `json:"created"`
	LastActive   time.Time `json:"lastActive" gorm:"index"`
	Introduction string    `json:"introduction"`
	LookingFor   string    `json:"lookingFor"`
	Interests    string    `json:"interests"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	PushToken    *string   `json:"-"`
	Photos       []Photo   `json:"photos,omitempty" gorm:"foreignKey:UserID"`
	// Likers are the edges pointing at this user, Likees the edges leaving it.
	Likers []Like `json:"-" gorm:"foreignKey:LikeeID"`
	Likees []Like `json:"-" gorm:"foreignKey:LikerID"`
}

// Photo represents a photo owned by a user
type Photo struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	DateAdded   time.Time `json:"dateAdded"`
	IsMain      bool      `json:"isMain"`
	PublicID    string    `json:"-"`
	UserID      int       `json:"userId" gorm:"index"`
}

// Like is a directed edge from the liker to the likee.
//
// The pair is unique by contract, not by constraint: the like service checks
// for an existing edge before staging a new one, and GetLike reports a
// violation instead of hiding it.
type Like struct {
	ID      int `json:"-" gorm:"primaryKey"`
	LikerID int `json:"likerId" gorm:"index:idx_likes_pair,priority:1"`
	LikeeID int `json:"likeeId" gorm:"index:idx_likes_pair,priority:2;index"`
}

// Message represents a direct message between two users
type Message struct {
	ID               int        `json:"id" gorm:"primaryKey"`
	SenderID         int        `json:"senderId" gorm:"index"`
	Sender           *User      `json:"-" gorm:"foreignKey:SenderID"`
	RecipientID      int        `json:"recipientId" gorm:"index"`
	Recipient        *User      `json:"-" gorm:"foreignKey:RecipientID"`
	Content          string     `json:"content" gorm:"type:text"`
	IsRead           bool       `json:"isRead"`
	DateRead         *time.Time `json:"dateRead"`
	MessageSent      time.Time  `json:"messageSent" gorm:"index"`
	SenderDeleted    bool       `json:"-"`
	RecipientDeleted bool       `json:"-"`
}

func (*User) entityName() string    { return "user" }
func (*Photo) entityName() string   { return "photo" }
func (*Like) entityName() string    { return "like" }
func (*Message) entityName() string { return "message" }

// MainPhoto returns the user's main photo, or nil when none is set.
func (u *User) MainPhoto() *Photo {
	for i := range u.Photos {
		if u.Photos[i].IsMain {
			return &u.Photos[i]
		}
	}
	return nil
}
