package service

import (
	"context"
	"encoding/json"

	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/internal/app/repository"
	"github.com/vinocave/vinocave-backend/pkg/logger"
	"github.com/vinocave/vinocave-backend/pkg/redis"
)

const defaultFeedLimit = 50

// FeedBroadcaster pushes a freshly written activity to connected
// clients. The websocket hub implements it; tests pass nil or a stub.
type FeedBroadcaster interface {
	BroadcastActivity(activity *model.CommunityActivity)
}

type ActivityService interface {
	Record(activity *model.CommunityActivity) error
	RecentFeed(limit int) ([]model.CommunityActivity, error)
	UserFeed(userID uint, limit int) ([]model.CommunityActivity, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
	broadcaster  FeedBroadcaster
	useCache     bool
}

func NewActivityService(activityRepo repository.ActivityRepository, broadcaster FeedBroadcaster, useCache bool) ActivityService {
	return &activityService{
		activityRepo: activityRepo,
		broadcaster:  broadcaster,
		useCache:     useCache,
	}
}

// Record appends a feed entry, refreshes the recent-feed cache and
// notifies live clients. Cache and broadcast failures never fail the
// write; the feed row is the source of truth.
func (s *activityService) Record(activity *model.CommunityActivity) error {
	if err := s.activityRepo.Create(activity); err != nil {
		return err
	}

	if s.useCache {
		if payload, err := json.Marshal(activity); err == nil {
			if err := redis.PushRecentActivity(context.Background(), payload); err != nil {
				logger.Warn("Failed to cache activity, feed cache is stale", map[string]interface{}{
					"activity_id": activity.ID,
				})
			}
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastActivity(activity)
	}

	logger.Info("Community activity recorded", map[string]interface{}{
		"activity_id":   activity.ID,
		"user_id":       activity.UserID,
		"activity_type": activity.ActivityType,
		"wine_name":     activity.WineName,
	})
	return nil
}

// RecentFeed returns the most recent activities, newest first. The
// redis cache is tried first; any cache problem falls back to the
// database.
func (s *activityService) RecentFeed(limit int) ([]model.CommunityActivity, error) {
	if limit <= 0 || limit > defaultFeedLimit {
		limit = defaultFeedLimit
	}

	if s.useCache {
		if cached, err := redis.RecentActivities(context.Background(), int64(limit)); err == nil && len(cached) > 0 {
			activities := make([]model.CommunityActivity, 0, len(cached))
			for _, raw := range cached {
				var activity model.CommunityActivity
				if err := json.Unmarshal([]byte(raw), &activity); err != nil {
					activities = nil
					break
				}
				activities = append(activities, activity)
			}
			if activities != nil {
				return activities, nil
			}
			logger.Warn("Corrupt entry in activity cache, falling back to database", nil)
		}
	}

	return s.activityRepo.FindRecent(limit)
}

func (s *activityService) UserFeed(userID uint, limit int) ([]model.CommunityActivity, error) {
	if limit <= 0 || limit > defaultFeedLimit {
		limit = defaultFeedLimit
	}
	return s.activityRepo.FindByUserID(userID, limit)
}
