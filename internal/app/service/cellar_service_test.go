package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/internal/app/repository"
	"github.com/vinocave/vinocave-backend/internal/db"
	"gorm.io/gorm"
)

func setupCellarTest(t *testing.T) (CellarService, *gorm.DB) {
	t.Helper()

	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })

	cellarRepo := repository.NewCellarRepository(database)
	tastingRepo := repository.NewTastingRepository(database)
	activityRepo := repository.NewActivityRepository(database)
	activityService := NewActivityService(activityRepo, nil, false)

	return NewCellarService(cellarRepo, tastingRepo, activityService), database
}

func addTestWine(t *testing.T, svc CellarService, userID uint, name string) *model.CellarWine {
	t.Helper()

	item, err := svc.AddWine(userID, model.AddWineRequest{
		Name: name,
		Type: model.TypeRed,
	})
	require.NoError(t, err)
	return item
}

func TestAddWine(t *testing.T) {
	svc, database := setupCellarTest(t)

	t.Run("creates catalog row, cellar row and activity", func(t *testing.T) {
		item, err := svc.AddWine(1, model.AddWineRequest{
			Name:    "Châteauneuf-du-Pape",
			Type:    model.TypeRed,
			Vintage: "2020",
			Region:  "Rhône",
			Price:   "€45",
		})
		require.NoError(t, err)
		assert.NotZero(t, item.ID)
		assert.NotZero(t, item.WineID)
		assert.Equal(t, 1, item.Quantity)
		assert.Equal(t, model.ModeLibrary, item.Mode)
		assert.Equal(t, "Châteauneuf-du-Pape", item.Wine.Name)

		var wine model.Wine
		require.NoError(t, database.First(&wine, item.WineID).Error)
		assert.Equal(t, "€45", wine.Price)

		var activities []model.CommunityActivity
		require.NoError(t, database.Where("wine_id = ?", item.WineID).Find(&activities).Error)
		require.Len(t, activities, 1)
		assert.Equal(t, model.ActivityAdded, activities[0].ActivityType)
		assert.Equal(t, "Châteauneuf-du-Pape", activities[0].WineName)
	})

	t.Run("rejects unknown wine type", func(t *testing.T) {
		_, err := svc.AddWine(1, model.AddWineRequest{
			Name: "Fortified Something",
			Type: "fortified",
		})
		assert.ErrorIs(t, err, ErrInvalidWineType)
	})

	t.Run("defaults quantity to one", func(t *testing.T) {
		item, err := svc.AddWine(1, model.AddWineRequest{
			Name:     "Single Bottle",
			Type:     model.TypeWhite,
			Quantity: 0,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, item.Quantity)
	})
}

func TestListCellar(t *testing.T) {
	svc, database := setupCellarTest(t)

	addTestWine(t, svc, 1, "Zinfandel Old Vine")
	albarino, err := svc.AddWine(1, model.AddWineRequest{
		Name: "Albariño Rías Baixas",
		Type: model.TypeWhite,
	})
	require.NoError(t, err)
	addTestWine(t, svc, 2, "Someone Else's Barolo")

	t.Run("scoped to the owner", func(t *testing.T) {
		entries, err := svc.ListCellar(1, model.CellarListQuery{})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("applies search and type filter", func(t *testing.T) {
		entries, err := svc.ListCellar(1, model.CellarListQuery{Search: "albarino", Type: "white"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Albariño Rías Baixas", entries[0].Wine.Name)
	})

	t.Run("denormalizes the latest tasting rating", func(t *testing.T) {
		rating := 5
		require.NoError(t, database.Create(&model.Tasting{
			UserID:      1,
			WineID:      albarino.WineID,
			Rating:      &rating,
			TastingDate: albarino.CreatedAt,
		}).Error)

		entries, err := svc.ListCellar(1, model.CellarListQuery{Sort: SortByRating})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "Albariño Rías Baixas", entries[0].Wine.Name)
		assert.Equal(t, 5, entries[0].Rating)
		assert.Equal(t, 0, entries[1].Rating)
	})

	t.Run("a freshly added wine lists first", func(t *testing.T) {
		item := addTestWine(t, svc, 1, "Saint-Joseph")

		entries, err := svc.ListCellar(1, model.CellarListQuery{})
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, item.ID, entries[0].ID)
		assert.Equal(t, "Saint-Joseph", entries[0].Wine.Name)
	})
}

func TestUpdateCellarWine(t *testing.T) {
	svc, _ := setupCellarTest(t)
	item := addTestWine(t, svc, 1, "Barolo Riserva")

	t.Run("patches only the provided fields", func(t *testing.T) {
		favorite := true
		quantity := 6
		updated, err := svc.UpdateCellarWine(1, item.ID, model.UpdateCellarWineRequest{
			IsFavorite: &favorite,
			Quantity:   &quantity,
		})
		require.NoError(t, err)
		assert.True(t, updated.IsFavorite)
		assert.Equal(t, 6, updated.Quantity)
		assert.Equal(t, model.ModeLibrary, updated.Mode)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		mode := model.CellarMode("archived")
		_, err := svc.UpdateCellarWine(1, item.ID, model.UpdateCellarWineRequest{Mode: &mode})
		assert.ErrorIs(t, err, ErrInvalidCellarMode)
	})

	t.Run("empty patch returns the current row", func(t *testing.T) {
		updated, err := svc.UpdateCellarWine(1, item.ID, model.UpdateCellarWineRequest{})
		require.NoError(t, err)
		assert.Equal(t, item.ID, updated.ID)
	})

	t.Run("not found for another user's row", func(t *testing.T) {
		favorite := true
		_, err := svc.UpdateCellarWine(2, item.ID, model.UpdateCellarWineRequest{IsFavorite: &favorite})
		assert.ErrorIs(t, err, ErrCellarWineNotFound)
	})
}

func TestRemoveWine(t *testing.T) {
	svc, database := setupCellarTest(t)

	t.Run("removes the row and logs a removed activity", func(t *testing.T) {
		item := addTestWine(t, svc, 1, "Bourgogne Aligoté")

		require.NoError(t, svc.RemoveWine(1, item.ID, model.ReasonTasted))

		_, err := svc.GetCellarWine(1, item.ID)
		assert.ErrorIs(t, err, ErrCellarWineNotFound)

		var activities []model.CommunityActivity
		require.NoError(t, database.
			Where("wine_id = ? AND activity_type = ?", item.WineID, model.ActivityRemoved).
			Find(&activities).Error)
		require.Len(t, activities, 1)
		assert.Equal(t, "Bourgogne Aligoté", activities[0].WineName)
		assert.Equal(t, string(model.ReasonTasted), activities[0].Reason)
	})

	t.Run("keeps the wine and its tastings", func(t *testing.T) {
		item := addTestWine(t, svc, 1, "Crozes-Hermitage")
		rating := 4
		require.NoError(t, database.Create(&model.Tasting{
			UserID:      1,
			WineID:      item.WineID,
			Rating:      &rating,
			TastingDate: item.CreatedAt,
		}).Error)

		require.NoError(t, svc.RemoveWine(1, item.ID, model.ReasonSold))

		var wine model.Wine
		assert.NoError(t, database.First(&wine, item.WineID).Error)
		var tastings []model.Tasting
		require.NoError(t, database.Where("wine_id = ?", item.WineID).Find(&tastings).Error)
		assert.Len(t, tastings, 1)
	})

	t.Run("rejects an unknown reason before touching anything", func(t *testing.T) {
		item := addTestWine(t, svc, 1, "Pic Saint-Loup")

		err := svc.RemoveWine(1, item.ID, model.RemovalReason("lost"))
		assert.ErrorIs(t, err, ErrInvalidRemovalReason)

		_, err = svc.GetCellarWine(1, item.ID)
		assert.NoError(t, err)
	})

	t.Run("second removal is not found and logs no second activity", func(t *testing.T) {
		item := addTestWine(t, svc, 1, "Gevrey-Chambertin")

		require.NoError(t, svc.RemoveWine(1, item.ID, model.ReasonGifted))
		err := svc.RemoveWine(1, item.ID, model.ReasonGifted)
		assert.ErrorIs(t, err, ErrCellarWineNotFound)

		var count int64
		require.NoError(t, database.Model(&model.CommunityActivity{}).
			Where("wine_id = ? AND activity_type = ?", item.WineID, model.ActivityRemoved).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("not found for another user's row", func(t *testing.T) {
		item := addTestWine(t, svc, 1, "Madiran")
		err := svc.RemoveWine(2, item.ID, model.ReasonOther)
		assert.ErrorIs(t, err, ErrCellarWineNotFound)
	})
}
