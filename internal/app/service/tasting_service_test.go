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

func setupTastingTest(t *testing.T) (TastingService, *gorm.DB) {
	t.Helper()

	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })

	tastingRepo := repository.NewTastingRepository(database)
	wineRepo := repository.NewWineRepository(database)
	activityRepo := repository.NewActivityRepository(database)
	activityService := NewActivityService(activityRepo, nil, false)

	return NewTastingService(tastingRepo, wineRepo, activityService), database
}

func createTestWine(t *testing.T, database *gorm.DB, name string) *model.Wine {
	t.Helper()

	wine := &model.Wine{Name: name, Type: model.TypeRed}
	require.NoError(t, database.Create(wine).Error)
	return wine
}

func TestAddTasting(t *testing.T) {
	svc, database := setupTastingTest(t)

	t.Run("records the tasting and a tasted activity", func(t *testing.T) {
		wine := createTestWine(t, database, "Hermitage La Chapelle")
		rating := 5

		tasting, err := svc.AddTasting(1, model.CreateTastingRequest{
			WineID:       wine.ID,
			Rating:       &rating,
			TastingNotes: "Superbe équilibre",
		})
		require.NoError(t, err)
		assert.NotZero(t, tasting.ID)
		assert.False(t, tasting.TastingDate.IsZero())

		var activities []model.CommunityActivity
		require.NoError(t, database.
			Where("wine_id = ? AND activity_type = ?", wine.ID, model.ActivityTasted).
			Find(&activities).Error)
		require.Len(t, activities, 1)
		assert.Equal(t, "Hermitage La Chapelle", activities[0].WineName)
		require.NotNil(t, activities[0].Rating)
		assert.Equal(t, 5, *activities[0].Rating)
		assert.Equal(t, "Superbe équilibre", activities[0].Notes)
	})

	t.Run("honors an explicit tasting date", func(t *testing.T) {
		wine := createTestWine(t, database, "Sancerre")
		date := time.Date(2026, 2, 14, 20, 0, 0, 0, time.UTC)

		tasting, err := svc.AddTasting(1, model.CreateTastingRequest{
			WineID:      wine.ID,
			TastingDate: &date,
		})
		require.NoError(t, err)
		assert.True(t, tasting.TastingDate.Equal(date))
	})

	t.Run("missing wine keeps the tasting but skips the activity", func(t *testing.T) {
		tasting, err := svc.AddTasting(1, model.CreateTastingRequest{
			WineID: 99999,
		})
		require.NoError(t, err)
		assert.NotZero(t, tasting.ID)

		var count int64
		require.NoError(t, database.Model(&model.CommunityActivity{}).
			Where("wine_id = ?", 99999).
			Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestListTastings(t *testing.T) {
	svc, database := setupTastingTest(t)
	wine := createTestWine(t, database, "Volnay")

	early := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, date := range []time.Time{early, late} {
		d := date
		_, err := svc.AddTasting(1, model.CreateTastingRequest{WineID: wine.ID, TastingDate: &d})
		require.NoError(t, err)
	}
	_, err := svc.AddTasting(2, model.CreateTastingRequest{WineID: wine.ID})
	require.NoError(t, err)

	t.Run("returns the user's journal newest first", func(t *testing.T) {
		tastings, err := svc.ListTastings(1)
		require.NoError(t, err)
		require.Len(t, tastings, 2)
		assert.True(t, tastings[0].TastingDate.After(tastings[1].TastingDate))
	})

	t.Run("wine history is scoped to user and wine", func(t *testing.T) {
		tastings, err := svc.WineTastings(1, wine.ID)
		require.NoError(t, err)
		assert.Len(t, tastings, 2)
	})
}
