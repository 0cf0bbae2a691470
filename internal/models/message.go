package models

import (
	"time"
)

// Message is a directed message between two users. DateRead stays NULL until
// the recipient opens the thread; once set it is never cleared.
type Message struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	SenderID    uint       `json:"sender_id" gorm:"not null;index"`
	Sender      User       `json:"-" gorm:"foreignKey:SenderID"`
	RecipientID uint       `json:"recipient_id" gorm:"not null;index"`
	Recipient   User       `json:"-" gorm:"foreignKey:RecipientID"`
	Content     string     `json:"content" gorm:"not null"`
	DateRead    *time.Time `json:"date_read"`
	MessageSent time.Time  `json:"message_sent"`
}

type CreateMessageRequest struct {
	RecipientUsername string `json:"recipient_username" validate:"required"`
	Content           string `json:"content" validate:"required"`
}

type MessageResponse struct {
	ID                uint       `json:"id"`
	SenderID          uint       `json:"sender_id"`
	SenderUsername    string     `json:"sender_username"`
	SenderPhotoURL    string     `json:"sender_photo_url"`
	RecipientID       uint       `json:"recipient_id"`
	RecipientUsername string     `json:"recipient_username"`
	RecipientPhotoURL string     `json:"recipient_photo_url"`
	Content           string     `json:"content"`
	DateRead          *time.Time `json:"date_read"`
	MessageSent       time.Time  `json:"message_sent"`
}

// MessageResponseFrom projects a message whose Sender/Recipient (with photos)
// are loaded.
func MessageResponseFrom(m *Message) MessageResponse {
	return MessageResponse{
		ID:                m.ID,
		SenderID:          m.SenderID,
		SenderUsername:    m.Sender.Username,
		SenderPhotoURL:    mainPhotoURL(m.Sender.Photos),
		RecipientID:       m.RecipientID,
		RecipientUsername: m.Recipient.Username,
		RecipientPhotoURL: mainPhotoURL(m.Recipient.Photos),
		Content:           m.Content,
		DateRead:          m.DateRead,
		MessageSent:       m.MessageSent,
	}
}

func mainPhotoURL(photos []Photo) string {
	for _, p := range photos {
		if p.IsMain {
			return p.URL
		}
	}
	return ""
}
