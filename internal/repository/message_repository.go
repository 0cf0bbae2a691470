package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/sefazor/ourmatches-backend/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Add(message *models.Message) error {
	// Sender/Recipient kayıtları zaten var, sadece mesajı yaz
	return r.db.Omit("Sender", "Recipient").Create(message).Error
}

func (r *MessageRepository) GetByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// GetMessagesForUser lists one mailbox view, newest first. Container picks
// the view: Inbox (received), Outbox (sent), anything else means unread.
func (r *MessageRepository) GetMessagesForUser(params models.MessageParams) (*models.PagedResult[models.MessageResponse], error) {
	filtered := func() *gorm.DB {
		query := r.db.Model(&models.Message{}).
			Joins("JOIN users AS sender ON sender.id = messages.sender_id").
			Joins("JOIN users AS recipient ON recipient.id = messages.recipient_id")

		switch params.Container {
		case models.ContainerInbox:
			return query.Where("recipient.username = ?", params.Username)
		case models.ContainerOutbox:
			return query.Where("sender.username = ?", params.Username)
		default:
			return query.Where("recipient.username = ? AND messages.date_read IS NULL", params.Username)
		}
	}

	var totalCount int64
	if err := filtered().Count(&totalCount).Error; err != nil {
		return nil, err
	}

	var messages []models.Message
	err := filtered().
		Order("messages.message_sent DESC, messages.id DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Preload("Sender.Photos").
		Preload("Recipient.Photos").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	responses := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, models.MessageResponseFrom(&messages[i]))
	}

	return models.NewPagedResult(responses, totalCount, params.PageNumber, params.PageSize), nil
}

// GetMessageThread returns the full conversation between two users, oldest
// first. Reading the thread is a mutation: messages addressed to
// currentUsername that were unread get their DateRead stamped and persisted
// before anything is returned. The returned view is projected from the
// mutated rows, so the caller always sees the new timestamps. Re-reading the
// same thread changes nothing.
func (r *MessageRepository) GetMessageThread(currentUsername, recipientUsername string) ([]models.MessageResponse, error) {
	var messages []models.Message
	err := r.db.
		Joins("JOIN users AS sender ON sender.id = messages.sender_id").
		Joins("JOIN users AS recipient ON recipient.id = messages.recipient_id").
		Where(`(LOWER(recipient.username) = LOWER(?) AND LOWER(sender.username) = LOWER(?))
			OR (LOWER(recipient.username) = LOWER(?) AND LOWER(sender.username) = LOWER(?))`,
			currentUsername, recipientUsername, recipientUsername, currentUsername).
		Order("messages.message_sent ASC, messages.id ASC").
		Preload("Sender.Photos").
		Preload("Recipient.Photos").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	unread := UnreadForRecipient(messages, currentUsername)
	if len(unread) > 0 {
		now := time.Now()
		ids := make([]uint, 0, len(unread))
		for _, i := range unread {
			ids = append(ids, messages[i].ID)
		}

		err := r.db.Model(&models.Message{}).
			Where("id IN ?", ids).
			Update("date_read", now).Error
		if err != nil {
			// A half-read thread must not look read, fail the whole fetch.
			return nil, fmt.Errorf("failed to mark thread as read: %w", err)
		}

		for _, i := range unread {
			messages[i].DateRead = &now
		}
	}

	responses := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, models.MessageResponseFrom(&messages[i]))
	}
	return responses, nil
}

// UnreadForRecipient returns the indices of messages that are unread and
// addressed to the given user.
func UnreadForRecipient(messages []models.Message, username string) []int {
	var unread []int
	for i := range messages {
		if messages[i].DateRead == nil && strings.EqualFold(messages[i].Recipient.Username, username) {
			unread = append(unread, i)
		}
	}
	return unread
}
