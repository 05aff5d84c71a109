package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/vinocave/vinocave-backend/internal/app/service"
	"github.com/vinocave/vinocave-backend/internal/errors"
	"github.com/vinocave/vinocave-backend/internal/middleware"
	ws "github.com/vinocave/vinocave-backend/internal/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"https://vinocave.fr":   true,
			"http://localhost:5173": true, // dev
			"http://localhost:3000": true, // dev
		}
		return allowedOrigins[origin]
	},
}

type ActivityController struct {
	activityService service.ActivityService
	hub             *ws.Hub
}

func NewActivityController(activityService service.ActivityService, hub *ws.Hub) *ActivityController {
	return &ActivityController{
		activityService: activityService,
		hub:             hub,
	}
}

// RecentFeed returns the community feed, newest first
// GET /api/v1/community/feed?limit=
func (ctrl *ActivityController) RecentFeed(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	activities, err := ctrl.activityService.RecentFeed(limit)
	if err != nil {
		log.Error("Failed to fetch community feed", err, nil)
		errors.InternalError(c, "Erreur lors du chargement du fil d'activité")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activities,
		"count":      len(activities),
	})
}

// UserFeed returns the authenticated user's own activity history
// GET /api/v1/community/feed/me?limit=
func (ctrl *ActivityController) UserFeed(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	activities, err := ctrl.activityService.UserFeed(userID, limit)
	if err != nil {
		log.Error("Failed to fetch user activity feed", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activities,
		"count":      len(activities),
	})
}

// FeedSocket upgrades to a websocket pushing live feed events
// GET /api/v1/community/feed/live
func (ctrl *ActivityController) FeedSocket(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	client := &ws.Client{
		Hub:    ctrl.hub,
		Conn:   &ws.Conn{Conn: conn},
		UserID: userID,
		Send:   make(chan []byte, 256),
	}
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
