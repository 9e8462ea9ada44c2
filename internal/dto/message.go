package dto

import (
	"time"

	"dating-app-backend/internal/models"
)

// MessageForCreation is the body of a send-message request
type MessageForCreation struct {
	RecipientID int    `json:"recipientId" validate:"required,gt=0"`
	Content     string `json:"content" validate:"required,max=2000"`
}

// MessageToReturn is a message with both participants' display data
type MessageToReturn struct {
	ID                int        `json:"id"`
	SenderID          int        `json:"senderId"`
	SenderKnownAs     string     `json:"senderKnownAs"`
	SenderPhotoURL    string     `json:"senderPhotoUrl"`
	RecipientID       int        `json:"recipientId"`
	RecipientKnownAs  string     `json:"recipientKnownAs"`
	RecipientPhotoURL string     `json:"recipientPhotoUrl"`
	Content           string     `json:"content"`
	IsRead            bool       `json:"isRead"`
	DateRead          *time.Time `json:"dateRead"`
	MessageSent       time.Time  `json:"messageSent"`
}

// ToMessageToReturn maps a message. Participants that were not loaded leave
// their display fields empty.
func ToMessageToReturn(message *models.Message) MessageToReturn {
	out := MessageToReturn{
		ID:          message.ID,
		SenderID:    message.SenderID,
		RecipientID: message.RecipientID,
		Content:     message.Content,
		IsRead:      message.IsRead,
		DateRead:    message.DateRead,
		MessageSent: message.MessageSent,
	}
	if message.Sender != nil {
		out.SenderKnownAs = message.Sender.KnownAs
		if main := message.Sender.MainPhoto(); main != nil {
			out.SenderPhotoURL = main.URL
		}
	}
	if message.Recipient != nil {
		out.RecipientKnownAs = message.Recipient.KnownAs
		if main := message.Recipient.MainPhoto(); main != nil {
			out.RecipientPhotoURL = main.URL
		}
	}
	return out
}
