package repository

import (
	"context"
	"fmt"

	"dating-app-backend/internal/models"
	"dating-app-backend/internal/pagination"

	"gorm.io/gorm"
)

// GetMessage retrieves a message by ID
func (r *DatingRepository) GetMessage(ctx context.Context, id int) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).
		Scopes(withParticipants).
		Where("id = ?", id).
		First(&message).Error
	if err != nil {
		return nil, lookupErr(err, "message")
	}
	return &message, nil
}

// GetMessagesForUser returns one page of a user's inbox, outbox or unread
// messages, newest first. Any container other than Inbox and Outbox selects
// the unread messages.
func (r *DatingRepository) GetMessagesForUser(ctx context.Context, params MessageParams) (*pagination.PagedList[models.Message], error) {
	query := r.db.WithContext(ctx).Model(&models.Message{})

	switch params.MessageContainer {
	case ContainerInbox:
		query = query.Where("recipient_id = ? AND recipient_deleted = ?", params.UserID, false)
	case ContainerOutbox:
		query = query.Where("sender_id = ? AND sender_deleted = ?", params.UserID, false)
	default:
		query = query.Where("recipient_id = ? AND recipient_deleted = ? AND is_read = ?", params.UserID, false, false)
	}

	query = query.Order("message_sent DESC").Order("id DESC")

	return pagination.Create[models.Message](ctx, query, params.PageNumber, params.PageSize, withParticipants)
}

// GetMessageThread returns every message exchanged between userID and
// recipientID, newest first, minus the ones userID deleted on their side.
func (r *DatingRepository) GetMessageThread(ctx context.Context, userID, recipientID int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Scopes(withParticipants).
		Where("(recipient_id = ? AND recipient_deleted = ? AND sender_id = ?) OR (recipient_id = ? AND sender_id = ? AND sender_deleted = ?)",
			userID, false, recipientID,
			recipientID, userID, false).
		Order("message_sent DESC").
		Order("id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get message thread: %w", err)
	}
	return messages, nil
}

func withParticipants(db *gorm.DB) *gorm.DB {
	return db.Preload("Sender.Photos").Preload("Recipient.Photos")
}
