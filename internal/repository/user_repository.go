package repository

import (
	"time"

	"github.com/sefazor/ourmatches-backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Photos").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername is case-insensitive, usernames are unique regardless of case.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Photos").
		Where("LOWER(username) = LOWER(?)", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", username).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(user *models.User) error {
	return r.db.Omit("Photos").Save(user).Error
}

func (r *UserRepository) UpdatePassword(id uint, hashedPassword string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("password", hashedPassword).Error
}

func (r *UserRepository) TouchLastActive(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("last_active", at).Error
}

// GetMember projects a single user into the member shape.
func (r *UserRepository) GetMember(username string) (*models.MemberResponse, error) {
	user, err := r.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	member := models.MemberFromUser(user)
	return &member, nil
}

// GetMembers runs the member listing through the ORM: filter, count the
// unwindowed set, order, window, project. Read-only.
//
// Ordering must stay in lockstep with MemberQueryRepository.GetMembers — the
// two routes are expected to return the same identity sequence for the same
// params.
func (r *UserRepository) GetMembers(params models.UserParams) (*models.PagedResult[models.MemberResponse], error) {
	minDob, maxDob := params.DateOfBirthWindow(models.Today())

	filtered := func() *gorm.DB {
		query := r.db.Model(&models.User{}).
			Where("username != ?", params.CurrentUsername).
			Where("date_of_birth > ? AND date_of_birth <= ?", minDob, maxDob)
		if params.Gender != "" {
			query = query.Where("gender = ?", params.Gender)
		}
		return query
	}

	var totalCount int64
	if err := filtered().Count(&totalCount).Error; err != nil {
		return nil, err
	}

	var users []models.User
	err := filtered().
		Order("users." + params.OrderColumn() + " DESC, users.id DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Preload("Photos").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	members := make([]models.MemberResponse, 0, len(users))
	for i := range users {
		members = append(members, models.MemberFromUser(&users[i]))
	}

	return models.NewPagedResult(members, totalCount, params.PageNumber, params.PageSize), nil
}
