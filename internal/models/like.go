package models

import (
	"time"
)

// UserLike is a directed edge: SourceUser likes LikedUser. The pair is the
// primary key, so a user can like another user at most once.
type UserLike struct {
	SourceUserID uint      `json:"source_user_id" gorm:"primaryKey;autoIncrement:false"`
	LikedUserID  uint      `json:"liked_user_id" gorm:"primaryKey;autoIncrement:false"`
	SourceUser   User      `json:"-" gorm:"foreignKey:SourceUserID"`
	LikedUser    User      `json:"-" gorm:"foreignKey:LikedUserID"`
	CreatedAt    time.Time `json:"created_at"`
}

func (UserLike) TableName() string {
	return "user_likes"
}

type LikeResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	KnownAs  string `json:"known_as"`
	Age      int    `json:"age"`
	PhotoURL string `json:"photo_url"`
	City     string `json:"city"`
}
