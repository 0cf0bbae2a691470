package service

import (
	"context"
	"time"

	"github.com/sefazor/ourmatches-backend/internal/models"
	"github.com/sefazor/ourmatches-backend/internal/repository"
)

// MemberService fronts both member-listing routes. The ORM route and the
// raw-SQL route consume the exact same normalized params.
type MemberService struct {
	userRepo        *repository.UserRepository
	memberQueryRepo *repository.MemberQueryRepository
}

func NewMemberService(userRepo *repository.UserRepository, memberQueryRepo *repository.MemberQueryRepository) *MemberService {
	return &MemberService{
		userRepo:        userRepo,
		memberQueryRepo: memberQueryRepo,
	}
}

// prepare finishes normalization that needs the requesting user: the
// requester is excluded from their own results, and a missing gender filter
// defaults to the opposite of their own.
func (s *MemberService) prepare(params *models.UserParams, currentUsername string) error {
	user, err := s.userRepo.GetByUsername(currentUsername)
	if err != nil {
		return err
	}

	params.CurrentUsername = user.Username
	if params.Gender == "" {
		params.Gender = models.OppositeGender(user.Gender)
	}
	params.Normalize()
	return nil
}

func (s *MemberService) GetMembers(currentUsername string, params models.UserParams) (*models.PagedResult[models.MemberResponse], error) {
	if err := s.prepare(&params, currentUsername); err != nil {
		return nil, err
	}
	return s.userRepo.GetMembers(params)
}

// GetMembersSQL is the raw-SQL route. Same contract, same output.
func (s *MemberService) GetMembersSQL(ctx context.Context, currentUsername string, params models.UserParams) (*models.PagedResult[models.MemberResponse], error) {
	if err := s.prepare(&params, currentUsername); err != nil {
		return nil, err
	}
	return s.memberQueryRepo.GetMembers(ctx, params)
}

func (s *MemberService) GetMember(username string) (*models.MemberResponse, error) {
	return s.userRepo.GetMember(username)
}

func (s *MemberService) GetMemberSQL(ctx context.Context, username string) (*models.MemberResponse, error) {
	return s.memberQueryRepo.GetMember(ctx, username)
}

func (s *MemberService) UpdateProfile(username string, req models.UpdateProfileRequest) (*models.MemberResponse, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	user.Introduction = req.Introduction
	user.LookingFor = req.LookingFor
	user.Interests = req.Interests
	user.City = req.City
	user.Country = req.Country

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	member := models.MemberFromUser(user)
	return &member, nil
}

func (s *MemberService) UpdateProfileSQL(ctx context.Context, username string, req models.UpdateProfileRequest) error {
	return s.memberQueryRepo.UpdateProfile(ctx, username, req)
}

func (s *MemberService) TouchLastActive(userID uint) error {
	return s.userRepo.TouchLastActive(userID, time.Now())
}
