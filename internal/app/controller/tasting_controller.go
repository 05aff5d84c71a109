package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/internal/app/service"
	"github.com/vinocave/vinocave-backend/internal/errors"
	"github.com/vinocave/vinocave-backend/internal/middleware"
)

type TastingController struct {
	tastingService service.TastingService
}

func NewTastingController(tastingService service.TastingService) *TastingController {
	return &TastingController{
		tastingService: tastingService,
	}
}

// ListTastings returns the user's tasting journal
// GET /api/v1/tastings
func (ctrl *TastingController) ListTastings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	tastings, err := ctrl.tastingService.ListTastings(userID)
	if err != nil {
		log.Error("Failed to fetch tastings", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "Erreur lors du chargement des dégustations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tastings": tastings,
		"count":    len(tastings),
	})
}

// WineTastings returns the tasting history of one wine
// GET /api/v1/wines/:id/tastings
func (ctrl *TastingController) WineTastings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	wineID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tastings, err := ctrl.tastingService.WineTastings(userID, wineID)
	if err != nil {
		log.Error("Failed to fetch wine tastings", err, map[string]interface{}{
			"user_id": userID,
			"wine_id": wineID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tastings": tastings,
		"count":    len(tastings),
	})
}

// AddTasting records a tasting
// POST /api/v1/tastings
func (ctrl *TastingController) AddTasting(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req model.CreateTastingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid tasting request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Données de dégustation invalides")
		return
	}

	tasting, err := ctrl.tastingService.AddTasting(userID, req)
	if err != nil {
		log.Error("Failed to record tasting", err, map[string]interface{}{
			"user_id": userID,
			"wine_id": req.WineID,
		})
		info := errors.ParseError(err, "create tasting")
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	log.Info("Tasting recorded successfully", map[string]interface{}{
		"user_id":    userID,
		"tasting_id": tasting.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Dégustation enregistrée",
		"tasting": tasting,
	})
}
