package services

import (
	"context"
	"fmt"

	"dating-app-backend/internal/apperr"
	"dating-app-backend/internal/dto"
	"dating-app-backend/internal/models"
	"dating-app-backend/internal/pagination"
	"dating-app-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// MessageService handles direct messages between members
type MessageService struct {
	store    *repository.Store
	notifier *Notifier
}

// NewMessageService creates a new message service
func NewMessageService(store *repository.Store, notifier *Notifier) *MessageService {
	return &MessageService{store: store, notifier: notifier}
}

// GetMessage returns a message userID took part in
func (s *MessageService) GetMessage(ctx context.Context, userID, id int) (*dto.MessageToReturn, error) {
	message, err := s.participantMessage(ctx, s.store.Repository(), userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToMessageToReturn(message)
	return &out, nil
}

// GetMessagesForUser returns a page of the inbox, outbox or unread messages
func (s *MessageService) GetMessagesForUser(ctx context.Context, params repository.MessageParams) (*pagination.PagedList[dto.MessageToReturn], error) {
	switch params.MessageContainer {
	case "":
		params.MessageContainer = repository.ContainerUnread
	case repository.ContainerInbox, repository.ContainerOutbox, repository.ContainerUnread:
	default:
		return nil, apperr.BadRequest(fmt.Sprintf("Unknown message container %q", params.MessageContainer))
	}

	page, err := s.store.Repository().GetMessagesForUser(ctx, params)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return pagination.Map(page, func(m models.Message) dto.MessageToReturn {
		return dto.ToMessageToReturn(&m)
	}), nil
}

// GetMessageThread returns the conversation between userID and recipientID,
// newest first
func (s *MessageService) GetMessageThread(ctx context.Context, userID, recipientID int) ([]dto.MessageToReturn, error) {
	messages, err := s.store.Repository().GetMessageThread(ctx, userID, recipientID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	out := make([]dto.MessageToReturn, 0, len(messages))
	for i := range messages {
		out = append(out, dto.ToMessageToReturn(&messages[i]))
	}
	return out, nil
}

// CreateMessage sends a message from senderID
func (s *MessageService) CreateMessage(ctx context.Context, senderID int, req dto.MessageForCreation) (*dto.MessageToReturn, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	repo := s.store.Repository()
	if _, err := repo.GetUser(ctx, req.RecipientID); err != nil {
		return nil, lookupError(err, "User")
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
		MessageSent: s.store.Now(),
	}

	repo.Add(message)
	saved, err := repo.SaveAll(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !saved {
		return nil, apperr.BadRequest("Creating the message failed on save")
	}

	// Reload to pick up both participants
	created, err := repo.GetMessage(ctx, message.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	out := dto.ToMessageToReturn(created)

	log.Info().Int("message_id", created.ID).Int("sender_id", senderID).Int("recipient_id", req.RecipientID).Msg("Message sent")

	s.notifier.Notify(ctx, req.RecipientID, WSMessage{
		Type:      EventNewMessage,
		SenderID:  senderID,
		MessageID: created.ID,
		Message:   created.Content,
		Data:      out,
	})

	return &out, nil
}

// MarkAsRead marks a message read. Only its recipient may do so; marking an
// already read message is a no-op.
func (s *MessageService) MarkAsRead(ctx context.Context, userID, id int) error {
	repo := s.store.Repository()
	message, err := repo.GetMessage(ctx, id)
	if err != nil {
		return lookupError(err, "Message")
	}
	if message.RecipientID != userID {
		return apperr.Unauthorized("Only the recipient can mark a message as read")
	}
	if message.IsRead {
		return nil
	}

	now := s.store.Now()
	message.IsRead = true
	message.DateRead = &now

	repo.Update(message, "IsRead", "DateRead")
	saved, err := repo.SaveAll(ctx)
	if err != nil {
		return apperr.Internal(err)
	}
	if !saved {
		return apperr.NotFound("Message")
	}

	s.notifier.Notify(ctx, message.SenderID, WSMessage{
		Type:      EventMessageRead,
		SenderID:  userID,
		MessageID: message.ID,
	})
	return nil
}

// DeleteMessage hides a message from userID's side. The row is removed once
// both participants have deleted it.
//
// Only the caller's flag is written, and the removal is decided against the
// stored flags in the same transaction, so the two participants deleting at
// once cannot undo each other.
func (s *MessageService) DeleteMessage(ctx context.Context, userID, id int) error {
	repo := s.store.Repository()
	message, err := s.participantMessage(ctx, repo, userID, id)
	if err != nil {
		return err
	}

	var columns []string
	if message.SenderID == userID {
		message.SenderDeleted = true
		columns = append(columns, "SenderDeleted")
	}
	if message.RecipientID == userID {
		message.RecipientDeleted = true
		columns = append(columns, "RecipientDeleted")
	}

	repo.Update(message, columns...)
	repo.DeleteWhere(message, "sender_deleted = ? AND recipient_deleted = ?", true, true)

	saved, err := repo.SaveAll(ctx)
	if err != nil {
		return apperr.Internal(err)
	}
	if !saved {
		return apperr.NotFound("Message")
	}
	return nil
}

// participantMessage loads a message and hides it from non-participants
func (s *MessageService) participantMessage(ctx context.Context, repo *repository.DatingRepository, userID, id int) (*models.Message, error) {
	message, err := repo.GetMessage(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Message")
	}
	if message.SenderID != userID && message.RecipientID != userID {
		return nil, apperr.NotFound("Message")
	}
	return message, nil
}
