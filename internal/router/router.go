package router

import (
	"github.com/gin-gonic/gin"
	"github.com/vinocave/vinocave-backend/config"
	"github.com/vinocave/vinocave-backend/internal/app/controller"
	"github.com/vinocave/vinocave-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	cellarController   *controller.CellarController
	tastingController  *controller.TastingController
	activityController *controller.ActivityController
	statsController    *controller.StatsController
	uploadController   *controller.UploadController
	i18nController     *controller.I18nController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	cellarController *controller.CellarController,
	tastingController *controller.TastingController,
	activityController *controller.ActivityController,
	statsController *controller.StatsController,
	uploadController *controller.UploadController,
	i18nController *controller.I18nController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		cellarController:   cellarController,
		tastingController:  tastingController,
		activityController: activityController,
		statsController:    statsController,
		uploadController:   uploadController,
		i18nController:     i18nController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "VINOCAVE API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetProfile)
			auth.PATCH("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
			auth.POST("/password", r.authMiddleware.Authenticate(), r.authController.ChangePassword)
		}

		cellar := v1.Group("/cellar", r.authMiddleware.Authenticate())
		{
			cellar.GET("", r.cellarController.ListCellar)
			cellar.POST("", r.cellarController.AddWine)
			cellar.GET("/removal-reasons", r.cellarController.RemovalReasons)
			cellar.GET("/:id", r.cellarController.GetCellarWine)
			cellar.PATCH("/:id", r.cellarController.UpdateCellarWine)
			cellar.DELETE("/:id", r.cellarController.RemoveWine)
		}

		tastings := v1.Group("/tastings", r.authMiddleware.Authenticate())
		{
			tastings.GET("", r.tastingController.ListTastings)
			tastings.POST("", r.tastingController.AddTasting)
		}

		wines := v1.Group("/wines", r.authMiddleware.Authenticate())
		{
			wines.GET("/:id/tastings", r.tastingController.WineTastings)
		}

		community := v1.Group("/community")
		{
			community.GET("/feed", r.authMiddleware.OptionalAuthenticate(), r.activityController.RecentFeed)
			community.GET("/feed/me", r.authMiddleware.Authenticate(), r.activityController.UserFeed)
			community.GET("/feed/live", r.authMiddleware.Authenticate(), r.activityController.FeedSocket)
		}

		stats := v1.Group("/stats", r.authMiddleware.Authenticate())
		{
			stats.GET("/cellar", r.statsController.GetCellarStats)
		}

		uploads := v1.Group("/uploads", r.authMiddleware.Authenticate())
		{
			uploads.POST("/label", r.uploadController.PresignLabelUpload)
		}

		i18n := v1.Group("/i18n")
		{
			i18n.GET("/languages", r.i18nController.ListLanguages)
			i18n.GET("/:lang", r.i18nController.GetTranslations)
		}

		admin := v1.Group("/admin",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole("admin"),
		)
		{
			admin.POST("/snapshots", r.statsController.TriggerSnapshots)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
