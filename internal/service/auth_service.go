package service

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sefazor/ourmatches-backend/internal/models"
	"github.com/sefazor/ourmatches-backend/internal/repository"
	"github.com/sefazor/ourmatches-backend/pkg/bcrypt"
	"github.com/sefazor/ourmatches-backend/pkg/email"
	jwtPkg "github.com/sefazor/ourmatches-backend/pkg/jwt"
	"gorm.io/gorm"
)

const (
	// Token süreleri
	TokenExpiryLogin = 7 * 24 * time.Hour // 7 gün
	TokenExpiryReset = 15 * time.Minute   // 15 dakika
)

type AuthService struct {
	userRepo     *repository.UserRepository
	emailService *email.EmailService
	jwtSecret    []byte
}

func NewAuthService(userRepo *repository.UserRepository, emailService *email.EmailService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
		jwtSecret:    []byte(os.Getenv("JWT_SECRET")),
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	// Username kontrolü (case-insensitive unique)
	exists, err := s.userRepo.UsernameExists(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("username is taken")
	}

	// Şifreyi hashle
	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Username:    strings.ToLower(req.Username),
		Email:       strings.ToLower(req.Email),
		Password:    hashedPassword,
		KnownAs:     req.KnownAs,
		Gender:      strings.ToLower(req.Gender),
		DateOfBirth: req.DateOfBirth,
		City:        req.City,
		Country:     req.Country,
		Created:     now,
		LastActive:  now,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := jwtPkg.GenerateToken(user.Username, user.ID)
	if err != nil {
		return nil, err
	}

	go s.emailService.SendWelcomeEmail(user.Email, user.KnownAs)

	return &models.AuthResponse{
		Token:    token,
		Username: user.Username,
		KnownAs:  user.KnownAs,
		Gender:   user.Gender,
	}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		// Bilinmeyen kullanıcı ve yanlış şifre aynı cevabı döner
		return nil, errors.New("invalid username or password")
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, errors.New("invalid username or password")
	}

	token, err := jwtPkg.GenerateToken(user.Username, user.ID)
	if err != nil {
		return nil, err
	}

	resp := &models.AuthResponse{
		Token:    token,
		Username: user.Username,
		KnownAs:  user.KnownAs,
		Gender:   user.Gender,
	}
	for _, photo := range user.Photos {
		if photo.IsMain {
			resp.PhotoURL = photo.URL
		}
	}
	return resp, nil
}

func (s *AuthService) ForgotPassword(username string) error {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Kullanıcı adı sızdırmamak için sessizce başarılı dön
			return nil
		}
		return err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"purpose": "password_reset",
		"exp":     time.Now().Add(TokenExpiryReset).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return err
	}

	return s.emailService.SendPasswordResetEmail(user.Email, user.KnownAs, tokenString)
}

func (s *AuthService) ResetPassword(req models.ResetPasswordRequest) error {
	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(req.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !parsedToken.Valid {
		return errors.New("invalid or expired token")
	}

	if purpose, _ := claims["purpose"].(string); purpose != "password_reset" {
		return errors.New("invalid token claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return errors.New("invalid token claims")
	}

	hashedPassword, err := bcrypt.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(uint(userIDFloat), hashedPassword)
}
