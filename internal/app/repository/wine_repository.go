package repository

import (
	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/pkg/logger"
	"gorm.io/gorm"
)

type WineRepository interface {
	FindNameByID(id uint) (string, error)
	BulkCreate(wines []model.Wine, batchSize int) error
}

type wineRepository struct {
	db *gorm.DB
}

func NewWineRepository(db *gorm.DB) WineRepository {
	return &wineRepository{db: db}
}

// FindNameByID looks up only the display name of a wine. Used by the
// tasting flow, where the name lookup is a separate round trip from the
// tasting insert.
func (r *wineRepository) FindNameByID(id uint) (string, error) {
	var wine model.Wine
	if err := r.db.Select("name").First(&wine, id).Error; err != nil {
		return "", err
	}
	return wine.Name, nil
}

func (r *wineRepository) BulkCreate(wines []model.Wine, batchSize int) error {
	logger.Info("Bulk creating wines in database", map[string]interface{}{
		"count":      len(wines),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(wines, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create wines", err, map[string]interface{}{
			"count": len(wines),
		})
		return err
	}
	return nil
}
