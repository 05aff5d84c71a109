package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vinocave/vinocave-backend/config"
	"github.com/vinocave/vinocave-backend/pkg/logger"
)

const (
	// The community feed cache mirrors what the UI shows: only the
	// most recent activities are kept hot.
	recentActivitiesKey = "activities:recent"
	recentActivitiesMax = 50
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// BlacklistToken adds a token to the blacklist
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	if client == nil {
		return nil
	}

	logger.Debug("Adding token to blacklist", map[string]interface{}{
		"expiry": expiry.String(),
	})

	key := fmt.Sprintf("blacklist:%s", token)
	if err := client.Set(ctx, key, "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to blacklist token", err, nil)
		return err
	}
	return nil
}

// IsTokenBlacklisted checks if a token is in the blacklist
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if client == nil {
		return false, nil
	}

	key := fmt.Sprintf("blacklist:%s", token)
	val, err := client.Get(ctx, key).Result()

	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token blacklist", err, nil)
		return false, err
	}

	return val == "revoked", nil
}

// PushRecentActivity prepends a serialized activity to the recent-feed
// cache and trims the list to its cap
func PushRecentActivity(ctx context.Context, payload []byte) error {
	if client == nil {
		return nil
	}

	pipe := client.TxPipeline()
	pipe.LPush(ctx, recentActivitiesKey, payload)
	pipe.LTrim(ctx, recentActivitiesKey, 0, recentActivitiesMax-1)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Failed to cache recent activity", err, nil)
		return err
	}
	return nil
}

// RecentActivities returns the cached recent feed entries, newest first
func RecentActivities(ctx context.Context, limit int64) ([]string, error) {
	if client == nil {
		return nil, nil
	}
	if limit <= 0 || limit > recentActivitiesMax {
		limit = recentActivitiesMax
	}
	return client.LRange(ctx, recentActivitiesKey, 0, limit-1).Result()
}
