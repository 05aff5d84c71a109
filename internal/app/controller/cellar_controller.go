package controller

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/internal/app/service"
	"github.com/vinocave/vinocave-backend/internal/errors"
	"github.com/vinocave/vinocave-backend/internal/middleware"
)

type CellarController struct {
	cellarService service.CellarService
}

func NewCellarController(cellarService service.CellarService) *CellarController {
	return &CellarController{
		cellarService: cellarService,
	}
}

// RemoveWineRequest carries the mandatory removal reason
type RemoveWineRequest struct {
	Reason model.RemovalReason `json:"reason"`
}

// ListCellar returns the user's cellar, filtered and sorted
// GET /api/v1/cellar?search=&type=&sort=
func (ctrl *CellarController) ListCellar(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var query model.CellarListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.Warn("Invalid cellar list query", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Paramètres de tri ou de filtre invalides")
		return
	}

	entries, err := ctrl.cellarService.ListCellar(userID, query)
	if err != nil {
		log.Error("Failed to fetch cellar", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "Erreur lors du chargement de la cave")
		return
	}

	log.Info("Cellar fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(entries),
	})

	c.JSON(http.StatusOK, gin.H{
		"wines": entries,
		"count": len(entries),
	})
}

// GetCellarWine returns one cellar entry
// GET /api/v1/cellar/:id
func (ctrl *CellarController) GetCellarWine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := ctrl.cellarService.GetCellarWine(userID, id)
	if err != nil {
		if stderrors.Is(err, service.ErrCellarWineNotFound) {
			errors.NotFound(c, errors.CellarWineNotFound, "Ce vin n'est pas dans votre cave")
			return
		}
		log.Error("Failed to fetch cellar wine", err, map[string]interface{}{
			"user_id":        userID,
			"cellar_wine_id": id,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"wine": item})
}

// AddWine adds a bottle to the cellar
// POST /api/v1/cellar
func (ctrl *CellarController) AddWine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req model.AddWineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add wine request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Données du vin invalides")
		return
	}

	item, err := ctrl.cellarService.AddWine(userID, req)
	if err != nil {
		if stderrors.Is(err, service.ErrInvalidWineType) {
			errors.BadRequest(c, errors.WineInvalidType, "Type de vin inconnu")
			return
		}
		log.Error("Failed to add wine", err, map[string]interface{}{
			"user_id": userID,
			"name":    req.Name,
		})
		info := errors.ParseError(err, "add wine to cellar")
		errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	log.Info("Wine added successfully", map[string]interface{}{
		"user_id":        userID,
		"cellar_wine_id": item.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Vin ajouté à votre cave",
		"wine":    item,
	})
}

// UpdateCellarWine patches one cellar entry
// PATCH /api/v1/cellar/:id
func (ctrl *CellarController) UpdateCellarWine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateCellarWineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update cellar wine request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Données invalides")
		return
	}

	item, err := ctrl.cellarService.UpdateCellarWine(userID, id, req)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrCellarWineNotFound):
			errors.NotFound(c, errors.CellarWineNotFound, "Ce vin n'est pas dans votre cave")
		case stderrors.Is(err, service.ErrInvalidCellarMode):
			errors.BadRequest(c, errors.ValidationInvalidInput, "Mode de cave inconnu")
		default:
			log.Error("Failed to update cellar wine", err, map[string]interface{}{
				"user_id":        userID,
				"cellar_wine_id": id,
			})
			errors.InternalError(c, "Erreur lors de la modification. Veuillez réessayer plus tard")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"wine": item})
}

// RemoveWine removes a bottle, with a mandatory reason
// DELETE /api/v1/cellar/:id
func (ctrl *CellarController) RemoveWine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RemoveWineRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Reason == "" {
		log.Warn("Removal without a reason rejected", map[string]interface{}{
			"user_id":        userID,
			"cellar_wine_id": id,
		})
		errors.BadRequest(c, errors.CellarReasonRequired, "Veuillez choisir un motif de retrait")
		return
	}

	if err := ctrl.cellarService.RemoveWine(userID, id, req.Reason); err != nil {
		switch {
		case stderrors.Is(err, service.ErrInvalidRemovalReason):
			errors.BadRequest(c, errors.CellarInvalidReason, "Motif de retrait inconnu")
		case stderrors.Is(err, service.ErrCellarWineNotFound):
			errors.NotFound(c, errors.CellarWineNotFound, "Ce vin n'est pas dans votre cave")
		default:
			log.Error("Failed to remove wine", err, map[string]interface{}{
				"user_id":        userID,
				"cellar_wine_id": id,
			})
			errors.InternalError(c, "Erreur lors de la suppression. Veuillez réessayer plus tard")
		}
		return
	}

	log.Info("Wine removed successfully", map[string]interface{}{
		"user_id":        userID,
		"cellar_wine_id": id,
		"reason":         req.Reason,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Vin retiré de votre cave",
	})
}

// RemovalReasons lists the accepted removal reasons
// GET /api/v1/cellar/removal-reasons
func (ctrl *CellarController) RemovalReasons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"reasons": model.RemovalReasons(),
	})
}

// parseIDParam reads a numeric path parameter, responding with a 400 on
// garbage input
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Identifiant invalide")
		return 0, false
	}
	return uint(id), true
}
