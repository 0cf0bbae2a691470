package models

import (
	"time"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email,omitempty"`
	Password     string    `json:"-" gorm:"not null"`
	KnownAs      string    `json:"known_as"`
	DateOfBirth  time.Time `json:"date_of_birth" gorm:"not null"`
	Gender       string    `json:"gender" gorm:"not null"`
	Introduction string    `json:"introduction"`
	LookingFor   string    `json:"looking_for"`
	Interests    string    `json:"interests"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	IsPremium    bool      `json:"is_premium" gorm:"default:false"`
	Created      time.Time `json:"created"`
	LastActive   time.Time `json:"last_active"`
	Photos       []Photo   `json:"photos" gorm:"constraint:OnDelete:CASCADE"`
}

// MemberResponse is the listing/detail projection of a user. PhotoURL is the
// flattened main photo, Age is computed from DateOfBirth at projection time.
type MemberResponse struct {
	ID           uint            `json:"id"`
	Username     string          `json:"username"`
	KnownAs      string          `json:"known_as"`
	Age          int             `json:"age"`
	Gender       string          `json:"gender"`
	Introduction string          `json:"introduction"`
	LookingFor   string          `json:"looking_for"`
	Interests    string          `json:"interests"`
	City         string          `json:"city"`
	Country      string          `json:"country"`
	PhotoURL     string          `json:"photo_url"`
	Created      time.Time       `json:"created"`
	LastActive   time.Time       `json:"last_active"`
	Photos       []PhotoResponse `json:"photos"`
}

type UpdateProfileRequest struct {
	Introduction string `json:"introduction"`
	LookingFor   string `json:"looking_for"`
	Interests    string `json:"interests"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

// CalculateAge returns full years between dob and today, birthday-aware.
func CalculateAge(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

// MemberFromUser projects a user entity into the member shape.
func MemberFromUser(u *User) MemberResponse {
	member := MemberResponse{
		ID:           u.ID,
		Username:     u.Username,
		KnownAs:      u.KnownAs,
		Age:          CalculateAge(u.DateOfBirth, time.Now()),
		Gender:       u.Gender,
		Introduction: u.Introduction,
		LookingFor:   u.LookingFor,
		Interests:    u.Interests,
		City:         u.City,
		Country:      u.Country,
		Created:      u.Created,
		LastActive:   u.LastActive,
	}

	for _, photo := range u.Photos {
		member.Photos = append(member.Photos, PhotoResponseFrom(photo))
		if photo.IsMain {
			member.PhotoURL = photo.URL
		}
	}

	return member
}
