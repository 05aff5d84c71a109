package repository

import (
	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/pkg/logger"
	"gorm.io/gorm"
)

type CellarRepository interface {
	Create(item *model.CellarWine) error
	CreateWithWine(wine *model.Wine, item *model.CellarWine) error
	FindByUserID(userID uint) ([]model.CellarWine, error)
	FindByIDAndUser(id, userID uint) (*model.CellarWine, error)
	Update(id, userID uint, updates map[string]interface{}) (*model.CellarWine, error)
	Delete(id, userID uint) (int64, error)
}

type cellarRepository struct {
	db *gorm.DB
}

func NewCellarRepository(db *gorm.DB) CellarRepository {
	return &cellarRepository{db: db}
}

func (r *cellarRepository) Create(item *model.CellarWine) error {
	logger.Debug("Creating cellar wine in database", map[string]interface{}{
		"user_id": item.UserID,
		"wine_id": item.WineID,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cellar wine in database", err, map[string]interface{}{
			"user_id": item.UserID,
			"wine_id": item.WineID,
		})
		return err
	}
	return nil
}

// CreateWithWine inserts the catalog row and the ownership row in one
// transaction, so a failure cannot leave an orphan catalog row behind.
func (r *cellarRepository) CreateWithWine(wine *model.Wine, item *model.CellarWine) error {
	logger.Debug("Creating wine and cellar row in database", map[string]interface{}{
		"user_id": item.UserID,
		"name":    wine.Name,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(wine).Error; err != nil {
			return err
		}
		item.WineID = wine.ID
		return tx.Create(item).Error
	})
	if err != nil {
		logger.Error("Failed to create wine and cellar row", err, map[string]interface{}{
			"user_id": item.UserID,
			"name":    wine.Name,
		})
		return err
	}

	item.Wine = *wine
	return nil
}

func (r *cellarRepository) FindByUserID(userID uint) ([]model.CellarWine, error) {
	var items []model.CellarWine
	// id breaks ties between rows created in the same instant, so the
	// newest-first order stays deterministic.
	err := r.db.Where("user_id = ?", userID).
		Preload("Wine").
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cellar wines by user ID", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cellar wines found by user ID", map[string]interface{}{
		"user_id": userID,
		"count":   len(items),
	})
	return items, nil
}

func (r *cellarRepository) FindByIDAndUser(id, userID uint) (*model.CellarWine, error) {
	var item model.CellarWine
	err := r.db.Where("id = ? AND user_id = ?", id, userID).
		Preload("Wine").
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cellarRepository) Update(id, userID uint, updates map[string]interface{}) (*model.CellarWine, error) {
	logger.Debug("Updating cellar wine in database", map[string]interface{}{
		"cellar_wine_id": id,
		"user_id":        userID,
	})

	result := r.db.Model(&model.CellarWine{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Failed to update cellar wine", result.Error, map[string]interface{}{
			"cellar_wine_id": id,
			"user_id":        userID,
		})
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByIDAndUser(id, userID)
}

// Delete removes an ownership row scoped to its owner and reports how
// many rows were affected. Zero means the row was already gone, which
// the caller must surface as not-found rather than a success.
func (r *cellarRepository) Delete(id, userID uint) (int64, error) {
	logger.Debug("Deleting cellar wine from database", map[string]interface{}{
		"cellar_wine_id": id,
		"user_id":        userID,
	})

	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.CellarWine{})
	if result.Error != nil {
		logger.Error("Failed to delete cellar wine from database", result.Error, map[string]interface{}{
			"cellar_wine_id": id,
			"user_id":        userID,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
