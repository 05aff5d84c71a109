package repository

import (
	"time"

	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/pkg/logger"
	"gorm.io/gorm"
)

type SnapshotRepository interface {
	Create(snapshot *model.CellarSnapshot) error
	FindByUserSince(userID uint, since time.Time) ([]model.CellarSnapshot, error)
	DistinctUserIDs() ([]uint, error)
}

type snapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Create(snapshot *model.CellarSnapshot) error {
	if err := r.db.Create(snapshot).Error; err != nil {
		logger.Error("Failed to create cellar snapshot", err, map[string]interface{}{
			"user_id": snapshot.UserID,
		})
		return err
	}
	return nil
}

func (r *snapshotRepository) FindByUserSince(userID uint, since time.Time) ([]model.CellarSnapshot, error) {
	var snapshots []model.CellarSnapshot
	err := r.db.Where("user_id = ? AND snapshot_date >= ?", userID, since).
		Order("snapshot_date ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

// DistinctUserIDs lists the owners of non-empty cellars, for the daily
// snapshot job.
func (r *snapshotRepository) DistinctUserIDs() ([]uint, error) {
	var userIDs []uint
	err := r.db.Model(&model.CellarWine{}).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}
