package repository

import (
	"github.com/sefazor/ourmatches-backend/internal/models"
	"gorm.io/gorm"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{
		db: db,
	}
}

func (r *PhotoRepository) Create(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

func (r *PhotoRepository) GetByID(id uint) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.First(&photo, id).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoRepository) Delete(id uint) error {
	return r.db.Delete(&models.Photo{}, id).Error
}

func (r *PhotoRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Photo{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// SetMain flips the main flag to the given photo in one transaction: the
// previous main photo loses the flag, the new one gains it. At most one
// photo per user is ever main.
func (r *PhotoRepository) SetMain(userID, photoID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Photo{}).
			Where("user_id = ? AND is_main", userID).
			Update("is_main", false).Error
		if err != nil {
			return err
		}

		result := tx.Model(&models.Photo{}).
			Where("id = ? AND user_id = ?", photoID, userID).
			Update("is_main", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
