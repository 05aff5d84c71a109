package service

import (
	"math"
	"time"

	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/internal/app/repository"
	"github.com/vinocave/vinocave-backend/pkg/logger"
)

// valueHistoryWindow bounds the value-over-time chart
const valueHistoryWindow = 365 * 24 * time.Hour

// TypeBreakdown aggregates one wine type within a cellar
type TypeBreakdown struct {
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// ValuePoint is one day of the cellar's value history
type ValuePoint struct {
	Date        time.Time `json:"date"`
	BottleCount int       `json:"bottle_count"`
	TotalValue  float64   `json:"total_value"`
}

// CellarStats is the aggregate view of one user's cellar. Values come
// from the free-text prices; bottles whose price does not parse count
// toward totals but contribute no value.
type CellarStats struct {
	TotalWines    int                      `json:"total_wines"`
	TotalBottles  int                      `json:"total_bottles"`
	TotalValue    float64                  `json:"total_value"`
	FavoriteCount int                      `json:"favorite_count"`
	AverageRating float64                  `json:"average_rating"`
	TastingCount  int                      `json:"tasting_count"`
	ByType        map[string]TypeBreakdown `json:"by_type"`
	ByRegion      map[string]int           `json:"by_region"`
	ValueOverTime []ValuePoint             `json:"value_over_time"`
}

type StatsService interface {
	CellarStats(userID uint) (*CellarStats, error)
	SnapshotAllCellars() error
}

type statsService struct {
	cellarRepo   repository.CellarRepository
	tastingRepo  repository.TastingRepository
	snapshotRepo repository.SnapshotRepository
}

func NewStatsService(
	cellarRepo repository.CellarRepository,
	tastingRepo repository.TastingRepository,
	snapshotRepo repository.SnapshotRepository,
) StatsService {
	return &statsService{
		cellarRepo:   cellarRepo,
		tastingRepo:  tastingRepo,
		snapshotRepo: snapshotRepo,
	}
}

// CellarStats computes the aggregates for the stats page from the
// cellar, the tasting journal and the daily snapshots
func (s *statsService) CellarStats(userID uint) (*CellarStats, error) {
	items, err := s.cellarRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	stats := &CellarStats{
		ByType:   map[string]TypeBreakdown{},
		ByRegion: map[string]int{},
	}

	for _, item := range items {
		stats.TotalWines++
		stats.TotalBottles += item.Quantity
		if item.IsFavorite {
			stats.FavoriteCount++
		}

		value := 0.0
		if price := ParsePrice(item.Wine.Price); !math.IsInf(price, 1) {
			value = price * float64(item.Quantity)
			stats.TotalValue += value
		}

		byType := stats.ByType[string(item.Wine.Type)]
		byType.Count += item.Quantity
		byType.Value += value
		stats.ByType[string(item.Wine.Type)] = byType

		if item.Wine.Region != "" {
			stats.ByRegion[item.Wine.Region] += item.Quantity
		}
	}

	tastings, err := s.tastingRepo.FindByUserID(userID)
	if err != nil {
		logger.Warn("Failed to fetch tastings for stats, ratings omitted", map[string]interface{}{
			"user_id": userID,
		})
	} else {
		sum, rated := 0, 0
		for _, tasting := range tastings {
			stats.TastingCount++
			if tasting.Rating != nil {
				sum += *tasting.Rating
				rated++
			}
		}
		if rated > 0 {
			stats.AverageRating = float64(sum) / float64(rated)
		}
	}

	since := time.Now().Add(-valueHistoryWindow)
	snapshots, err := s.snapshotRepo.FindByUserSince(userID, since)
	if err != nil {
		logger.Warn("Failed to fetch snapshots for stats, history omitted", map[string]interface{}{
			"user_id": userID,
		})
	} else {
		stats.ValueOverTime = make([]ValuePoint, 0, len(snapshots))
		for _, snapshot := range snapshots {
			stats.ValueOverTime = append(stats.ValueOverTime, ValuePoint{
				Date:        snapshot.SnapshotDate,
				BottleCount: snapshot.BottleCount,
				TotalValue:  snapshot.TotalValue,
			})
		}
	}

	return stats, nil
}

// SnapshotAllCellars records today's bottle count and value for every
// non-empty cellar. Run daily by the scheduler; one failing user does
// not stop the rest.
func (s *statsService) SnapshotAllCellars() error {
	userIDs, err := s.snapshotRepo.DistinctUserIDs()
	if err != nil {
		logger.Error("Failed to list cellar owners for snapshots", err, nil)
		return err
	}

	now := time.Now()
	failed := 0
	for _, userID := range userIDs {
		if err := s.snapshotUser(userID, now); err != nil {
			failed++
		}
	}

	logger.Info("Cellar snapshots taken", map[string]interface{}{
		"users":  len(userIDs),
		"failed": failed,
	})
	return nil
}

func (s *statsService) snapshotUser(userID uint, date time.Time) error {
	items, err := s.cellarRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cellar for snapshot", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	bottles := 0
	value := 0.0
	for _, item := range items {
		bottles += item.Quantity
		if price := ParsePrice(item.Wine.Price); !math.IsInf(price, 1) {
			value += price * float64(item.Quantity)
		}
	}

	return s.snapshotRepo.Create(&model.CellarSnapshot{
		UserID:       userID,
		SnapshotDate: date,
		BottleCount:  bottles,
		TotalValue:   value,
	})
}
