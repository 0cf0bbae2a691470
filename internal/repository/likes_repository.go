package repository

import (
	"time"

	"github.com/sefazor/ourmatches-backend/internal/models"
	"gorm.io/gorm"
)

type LikesRepository struct {
	db *gorm.DB
}

func NewLikesRepository(db *gorm.DB) *LikesRepository {
	return &LikesRepository{db: db}
}

func (r *LikesRepository) GetUserLike(sourceUserID, likedUserID uint) (*models.UserLike, error) {
	var like models.UserLike
	err := r.db.
		Where("source_user_id = ? AND liked_user_id = ?", sourceUserID, likedUserID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *LikesRepository) AddLike(sourceUserID, likedUserID uint) error {
	return r.db.Create(&models.UserLike{
		SourceUserID: sourceUserID,
		LikedUserID:  likedUserID,
		CreatedAt:    time.Now(),
	}).Error
}

// GetUserLikes lists the users on one side of the like relation: the users
// the given user has liked, or the users who liked them. Ordered by username
// with id as tie-break.
func (r *LikesRepository) GetUserLikes(params models.LikesParams) (*models.PagedResult[models.LikeResponse], error) {
	filtered := func() *gorm.DB {
		query := r.db.Model(&models.User{})
		if params.Predicate == models.PredicateLikedBy {
			return query.
				Joins("JOIN user_likes ON user_likes.source_user_id = users.id").
				Where("user_likes.liked_user_id = ?", params.UserID)
		}
		return query.
			Joins("JOIN user_likes ON user_likes.liked_user_id = users.id").
			Where("user_likes.source_user_id = ?", params.UserID)
	}

	var totalCount int64
	if err := filtered().Count(&totalCount).Error; err != nil {
		return nil, err
	}

	var users []models.User
	err := filtered().
		Order("users.username ASC, users.id ASC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Preload("Photos").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	likes := make([]models.LikeResponse, 0, len(users))
	for i := range users {
		member := models.MemberFromUser(&users[i])
		likes = append(likes, models.LikeResponse{
			ID:       member.ID,
			Username: member.Username,
			KnownAs:  member.KnownAs,
			Age:      member.Age,
			PhotoURL: member.PhotoURL,
			City:     member.City,
		})
	}

	return models.NewPagedResult(likes, totalCount, params.PageNumber, params.PageSize), nil
}
