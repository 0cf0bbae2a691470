package models

import (
	"time"
)

type Photo struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	URL        string    `json:"url" gorm:"not null"`
	StorageKey string    `json:"-"`
	IsMain     bool      `json:"is_main" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
}

type PhotoResponse struct {
	ID     uint   `json:"id"`
	URL    string `json:"url"`
	IsMain bool   `json:"is_main"`
}

func PhotoResponseFrom(p Photo) PhotoResponse {
	return PhotoResponse{
		ID:     p.ID,
		URL:    p.URL,
		IsMain: p.IsMain,
	}
}
