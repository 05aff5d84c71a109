package repository

import (
	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/pkg/logger"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	Create(activity *model.CommunityActivity) error
	FindRecent(limit int) ([]model.CommunityActivity, error)
	FindByUserID(userID uint, limit int) ([]model.CommunityActivity, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// Create appends a feed entry. Activities are write-once; there is no
// update or delete path.
func (r *activityRepository) Create(activity *model.CommunityActivity) error {
	logger.Debug("Creating community activity in database", map[string]interface{}{
		"user_id":       activity.UserID,
		"activity_type": activity.ActivityType,
		"wine_name":     activity.WineName,
	})

	if err := r.db.Create(activity).Error; err != nil {
		logger.Error("Failed to create community activity in database", err, map[string]interface{}{
			"user_id":       activity.UserID,
			"activity_type": activity.ActivityType,
		})
		return err
	}
	return nil
}

func (r *activityRepository) FindRecent(limit int) ([]model.CommunityActivity, error) {
	var activities []model.CommunityActivity
	err := r.db.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		logger.Error("Failed to find recent community activities", err, nil)
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) FindByUserID(userID uint, limit int) ([]model.CommunityActivity, error) {
	var activities []model.CommunityActivity
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}
