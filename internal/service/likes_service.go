package service

import (
	"errors"

	"github.com/sefazor/ourmatches-backend/internal/models"
	"github.com/sefazor/ourmatches-backend/internal/repository"
	"gorm.io/gorm"
)

type LikesService struct {
	likesRepo *repository.LikesRepository
	userRepo  *repository.UserRepository
}

func NewLikesService(likesRepo *repository.LikesRepository, userRepo *repository.UserRepository) *LikesService {
	return &LikesService{
		likesRepo: likesRepo,
		userRepo:  userRepo,
	}
}

func (s *LikesService) AddLike(sourceUsername, likedUsername string) error {
	sourceUser, err := s.userRepo.GetByUsername(sourceUsername)
	if err != nil {
		return err
	}

	likedUser, err := s.userRepo.GetByUsername(likedUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user not found")
		}
		return err
	}

	if sourceUser.ID == likedUser.ID {
		return errors.New("you cannot like yourself")
	}

	if _, err := s.likesRepo.GetUserLike(sourceUser.ID, likedUser.ID); err == nil {
		return errors.New("you already like this user")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.likesRepo.AddLike(sourceUser.ID, likedUser.ID)
}

func (s *LikesService) GetLikes(currentUsername string, params models.LikesParams) (*models.PagedResult[models.LikeResponse], error) {
	user, err := s.userRepo.GetByUsername(currentUsername)
	if err != nil {
		return nil, err
	}

	params.UserID = user.ID
	params.Normalize()

	return s.likesRepo.GetUserLikes(params)
}
