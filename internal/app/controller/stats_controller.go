package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vinocave/vinocave-backend/internal/app/service"
	"github.com/vinocave/vinocave-backend/internal/errors"
	"github.com/vinocave/vinocave-backend/internal/middleware"
)

type StatsController struct {
	statsService service.StatsService
}

func NewStatsController(statsService service.StatsService) *StatsController {
	return &StatsController{
		statsService: statsService,
	}
}

// GetCellarStats returns the aggregate view of the user's cellar
// GET /api/v1/stats/cellar
func (ctrl *StatsController) GetCellarStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	stats, err := ctrl.statsService.CellarStats(userID)
	if err != nil {
		log.Error("Failed to compute cellar stats", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "Erreur lors du calcul des statistiques")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// TriggerSnapshots runs the daily snapshot job on demand, admin only
// POST /api/v1/admin/snapshots
func (ctrl *StatsController) TriggerSnapshots(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.statsService.SnapshotAllCellars(); err != nil {
		log.Error("On-demand snapshot run failed", err, nil)
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Instantanés des caves enregistrés",
	})
}
