package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/internal/app/repository"
	"github.com/vinocave/vinocave-backend/internal/app/service"
	"github.com/vinocave/vinocave-backend/internal/db"
	"github.com/vinocave/vinocave-backend/internal/middleware"
	"gorm.io/gorm"
)

func setupTastingControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })

	tastingRepo := repository.NewTastingRepository(database)
	wineRepo := repository.NewWineRepository(database)
	activityRepo := repository.NewActivityRepository(database)
	activityService := service.NewActivityService(activityRepo, nil, false)
	tastingService := service.NewTastingService(tastingRepo, wineRepo, activityService)

	ctrl := NewTastingController(tastingService)
	authMiddleware := middleware.NewAuthMiddleware(testSecret)

	router := gin.New()
	router.GET("/tastings", authMiddleware.Authenticate(), ctrl.ListTastings)
	router.POST("/tastings", authMiddleware.Authenticate(), ctrl.AddTasting)
	router.GET("/wines/:id/tastings", authMiddleware.Authenticate(), ctrl.WineTastings)

	return router, database
}

func TestTastingController_AddTasting(t *testing.T) {
	router, database := setupTastingControllerTest(t)
	token := cellarToken(t, 1)

	wine := &model.Wine{Name: "Hermitage", Type: model.TypeRed}
	require.NoError(t, database.Create(wine).Error)

	t.Run("records a tasting", func(t *testing.T) {
		rating := 5
		w := doJSON(router, "POST", "/tastings", model.CreateTastingRequest{
			WineID:       wine.ID,
			Rating:       &rating,
			TastingNotes: "Grande année",
		}, token)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Grande année")
	})

	t.Run("rejects a rating out of range", func(t *testing.T) {
		rating := 6
		w := doJSON(router, "POST", "/tastings", model.CreateTastingRequest{
			WineID: wine.ID,
			Rating: &rating,
		}, token)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a missing wine id", func(t *testing.T) {
		w := doJSON(router, "POST", "/tastings", map[string]interface{}{
			"rating": 4,
		}, token)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("lists the journal", func(t *testing.T) {
		w := doJSON(router, "GET", "/tastings", nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"count":1`)
	})

	t.Run("lists one wine's history", func(t *testing.T) {
		w := doJSON(router, "GET", fmt.Sprintf("/wines/%d/tastings", wine.ID), nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"count":1`)
	})
}
