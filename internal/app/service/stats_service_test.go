package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/internal/app/repository"
	"github.com/vinocave/vinocave-backend/internal/db"
	"gorm.io/gorm"
)

func setupStatsTest(t *testing.T) (StatsService, CellarService, *gorm.DB) {
	t.Helper()

	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })

	cellarRepo := repository.NewCellarRepository(database)
	tastingRepo := repository.NewTastingRepository(database)
	snapshotRepo := repository.NewSnapshotRepository(database)
	activityRepo := repository.NewActivityRepository(database)
	activityService := NewActivityService(activityRepo, nil, false)

	statsService := NewStatsService(cellarRepo, tastingRepo, snapshotRepo)
	cellarService := NewCellarService(cellarRepo, tastingRepo, activityService)
	return statsService, cellarService, database
}

func TestCellarStats(t *testing.T) {
	statsSvc, cellarSvc, database := setupStatsTest(t)

	_, err := cellarSvc.AddWine(1, model.AddWineRequest{
		Name:     "Châteauneuf-du-Pape",
		Type:     model.TypeRed,
		Region:   "Rhône",
		Price:    "€200",
		Quantity: 2,
	})
	require.NoError(t, err)
	albarino, err := cellarSvc.AddWine(1, model.AddWineRequest{
		Name:   "Albariño Rías Baixas",
		Type:   model.TypeWhite,
		Region: "Galice",
		Price:  "€85",
	})
	require.NoError(t, err)
	_, err = cellarSvc.AddWine(1, model.AddWineRequest{
		Name:  "Mystery Bottle",
		Type:  model.TypeRed,
		Price: "sur demande",
	})
	require.NoError(t, err)

	favorite := true
	_, err = cellarSvc.UpdateCellarWine(1, albarino.ID, model.UpdateCellarWineRequest{IsFavorite: &favorite})
	require.NoError(t, err)

	for _, rating := range []int{5, 3} {
		r := rating
		require.NoError(t, database.Create(&model.Tasting{
			UserID:      1,
			WineID:      albarino.WineID,
			Rating:      &r,
			TastingDate: time.Now(),
		}).Error)
	}

	stats, err := statsSvc.CellarStats(1)
	require.NoError(t, err)

	t.Run("counts wines and bottles", func(t *testing.T) {
		assert.Equal(t, 3, stats.TotalWines)
		assert.Equal(t, 4, stats.TotalBottles)
		assert.Equal(t, 1, stats.FavoriteCount)
	})

	t.Run("sums only parseable prices", func(t *testing.T) {
		assert.InDelta(t, 485.0, stats.TotalValue, 0.001)
	})

	t.Run("breaks down by type with quantities", func(t *testing.T) {
		assert.Equal(t, 3, stats.ByType["red"].Count)
		assert.InDelta(t, 400.0, stats.ByType["red"].Value, 0.001)
		assert.Equal(t, 1, stats.ByType["white"].Count)
	})

	t.Run("breaks down by region, skipping blanks", func(t *testing.T) {
		assert.Equal(t, 2, stats.ByRegion["Rhône"])
		assert.Equal(t, 1, stats.ByRegion["Galice"])
		_, present := stats.ByRegion[""]
		assert.False(t, present)
	})

	t.Run("averages the ratings", func(t *testing.T) {
		assert.Equal(t, 2, stats.TastingCount)
		assert.InDelta(t, 4.0, stats.AverageRating, 0.001)
	})

	t.Run("empty cellar yields zeroes", func(t *testing.T) {
		empty, err := statsSvc.CellarStats(42)
		require.NoError(t, err)
		assert.Zero(t, empty.TotalWines)
		assert.Zero(t, empty.TotalValue)
		assert.Empty(t, empty.ByType)
	})
}

func TestSnapshotAllCellars(t *testing.T) {
	statsSvc, cellarSvc, database := setupStatsTest(t)

	_, err := cellarSvc.AddWine(1, model.AddWineRequest{
		Name:     "Barolo",
		Type:     model.TypeRed,
		Price:    "€60",
		Quantity: 3,
	})
	require.NoError(t, err)
	_, err = cellarSvc.AddWine(2, model.AddWineRequest{
		Name:  "Riesling",
		Type:  model.TypeWhite,
		Price: "€25",
	})
	require.NoError(t, err)

	require.NoError(t, statsSvc.SnapshotAllCellars())

	var snapshots []model.CellarSnapshot
	require.NoError(t, database.Order("user_id ASC").Find(&snapshots).Error)
	require.Len(t, snapshots, 2)

	assert.Equal(t, 3, snapshots[0].BottleCount)
	assert.InDelta(t, 180.0, snapshots[0].TotalValue, 0.001)
	assert.Equal(t, 1, snapshots[1].BottleCount)
	assert.InDelta(t, 25.0, snapshots[1].TotalValue, 0.001)

	t.Run("snapshots feed the value history", func(t *testing.T) {
		stats, err := statsSvc.CellarStats(1)
		require.NoError(t, err)
		require.Len(t, stats.ValueOverTime, 1)
		assert.Equal(t, 3, stats.ValueOverTime[0].BottleCount)
		assert.InDelta(t, 180.0, stats.ValueOverTime[0].TotalValue, 0.001)
	})
}
