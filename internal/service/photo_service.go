package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/sefazor/ourmatches-backend/internal/models"
	"github.com/sefazor/ourmatches-backend/internal/repository"
	"github.com/sefazor/ourmatches-backend/pkg/storage"
	"github.com/sefazor/ourmatches-backend/pkg/utils"
)

type PhotoService struct {
	photoRepo *repository.PhotoRepository
	userRepo  *repository.UserRepository
	storage   storage.StorageService
	publicURL string
}

func NewPhotoService(
	photoRepo *repository.PhotoRepository,
	userRepo *repository.UserRepository,
	storage storage.StorageService,
	publicURL string,
) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		userRepo:  userRepo,
		storage:   storage,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *PhotoService) AddPhoto(username string, file *multipart.FileHeader) (*models.PhotoResponse, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	// Dosya tipini kontrol et
	if !isValidImageType(file.Header.Get("Content-Type")) {
		return nil, errors.New("invalid file type")
	}

	// Dosya boyutunu kontrol et (10MB)
	if file.Size > 10*1024*1024 {
		return nil, errors.New("file size too large")
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	key := fmt.Sprintf("users/%d/%s-%s", user.ID, utils.GenerateRandomString(8), file.Filename)
	if err := s.storage.Upload(key, src); err != nil {
		return nil, err
	}

	photo := &models.Photo{
		UserID:     user.ID,
		URL:        s.publicURL + "/" + key,
		StorageKey: key,
		CreatedAt:  time.Now(),
	}

	// İlk fotoğraf otomatik olarak ana fotoğraf olur
	if len(user.Photos) == 0 {
		photo.IsMain = true
	}

	if err := s.photoRepo.Create(photo); err != nil {
		// Cleanup
		_ = s.storage.Delete(key)
		return nil, err
	}

	response := models.PhotoResponseFrom(*photo)
	return &response, nil
}

func (s *PhotoService) SetMainPhoto(username string, photoID uint) error {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return err
	}

	photo, err := s.findUserPhoto(user, photoID)
	if err != nil {
		return err
	}

	if photo.IsMain {
		return errors.New("this is already your main photo")
	}

	return s.photoRepo.SetMain(user.ID, photoID)
}

func (s *PhotoService) DeletePhoto(username string, photoID uint) error {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return err
	}

	photo, err := s.findUserPhoto(user, photoID)
	if err != nil {
		return err
	}

	if photo.IsMain {
		return errors.New("you cannot delete your main photo")
	}

	if photo.StorageKey != "" {
		if err := s.storage.Delete(photo.StorageKey); err != nil {
			return err
		}
	}

	return s.photoRepo.Delete(photo.ID)
}

func (s *PhotoService) findUserPhoto(user *models.User, photoID uint) (*models.Photo, error) {
	for i := range user.Photos {
		if user.Photos[i].ID == photoID {
			return &user.Photos[i], nil
		}
	}
	return nil, errors.New("photo not found")
}

func isValidImageType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}
