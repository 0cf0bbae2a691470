package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sefazor/ourmatches-backend/internal/models"
	"github.com/sefazor/ourmatches-backend/internal/repository"
	"gorm.io/gorm"
)

type MessageService struct {
	messageRepo *repository.MessageRepository
	userRepo    *repository.UserRepository
}

func NewMessageService(messageRepo *repository.MessageRepository, userRepo *repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

func (s *MessageService) SendMessage(senderUsername string, req models.CreateMessageRequest) (*models.MessageResponse, error) {
	if strings.EqualFold(senderUsername, req.RecipientUsername) {
		return nil, errors.New("you cannot send messages to yourself")
	}

	sender, err := s.userRepo.GetByUsername(senderUsername)
	if err != nil {
		return nil, err
	}

	recipient, err := s.userRepo.GetByUsername(req.RecipientUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	message := &models.Message{
		SenderID:    sender.ID,
		Sender:      *sender,
		RecipientID: recipient.ID,
		Recipient:   *recipient,
		Content:     req.Content,
		MessageSent: time.Now(),
	}

	if err := s.messageRepo.Add(message); err != nil {
		return nil, err
	}

	response := models.MessageResponseFrom(message)
	return &response, nil
}

func (s *MessageService) GetMessagesForUser(currentUsername string, params models.MessageParams) (*models.PagedResult[models.MessageResponse], error) {
	params.Username = currentUsername
	params.Normalize()
	return s.messageRepo.GetMessagesForUser(params)
}

// GetThread returns the conversation oldest-first and marks everything
// addressed to the requester as read before it returns.
func (s *MessageService) GetThread(currentUsername, otherUsername string) ([]models.MessageResponse, error) {
	return s.messageRepo.GetMessageThread(currentUsername, otherUsername)
}
