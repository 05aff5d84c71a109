package repository

import (
	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/pkg/logger"
	"gorm.io/gorm"
)

type TastingRepository interface {
	Create(tasting *model.Tasting) error
	FindByUserID(userID uint) ([]model.Tasting, error)
	FindByUserAndWine(userID, wineID uint) ([]model.Tasting, error)
}

type tastingRepository struct {
	db *gorm.DB
}

func NewTastingRepository(db *gorm.DB) TastingRepository {
	return &tastingRepository{db: db}
}

func (r *tastingRepository) Create(tasting *model.Tasting) error {
	logger.Debug("Creating tasting in database", map[string]interface{}{
		"user_id": tasting.UserID,
		"wine_id": tasting.WineID,
	})

	if err := r.db.Create(tasting).Error; err != nil {
		logger.Error("Failed to create tasting in database", err, map[string]interface{}{
			"user_id": tasting.UserID,
			"wine_id": tasting.WineID,
		})
		return err
	}
	return nil
}

func (r *tastingRepository) FindByUserID(userID uint) ([]model.Tasting, error) {
	var tastings []model.Tasting
	err := r.db.Where("user_id = ?", userID).
		Preload("Wine").
		Order("tasting_date DESC").
		Find(&tastings).Error
	if err != nil {
		logger.Error("Failed to find tastings by user ID", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return tastings, nil
}

// FindByUserAndWine returns the tasting history of one wine, most
// recent first.
func (r *tastingRepository) FindByUserAndWine(userID, wineID uint) ([]model.Tasting, error) {
	var tastings []model.Tasting
	err := r.db.Where("user_id = ? AND wine_id = ?", userID, wineID).
		Order("tasting_date DESC").
		Find(&tastings).Error
	if err != nil {
		return nil, err
	}
	return tastings, nil
}
