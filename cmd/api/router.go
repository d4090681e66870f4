package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"htc-backend/internal/config"
	"htc-backend/internal/shared/middleware"
	"htc-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = 8 << 20

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigins),
	)

	// Local blobs are served by the API itself; MinIO and S3 hand out presigned URLs.
	if c.Config.Storage.Driver == config.StorageLocal {
		router.Static(c.Config.Storage.Local.URLPrefix, c.Config.Storage.Local.Root)
	}

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c.Config.App.Version, c.Store, cachePinger(c)))

		setupArtistRoutes(api, c)
		setupGalleryRoutes(api, c)
		setupKolRoutes(api, c)
		setupPetRoutes(api, c)
		setupTeamRoutes(api, c)
		setupProjectRoutes(api, c)
		setupDashboardRoutes(api, c)
		setupUploadRoutes(api, c)
	}

	return router
}

// ========================================
// ENTITY ROUTES
// ========================================
func setupArtistRoutes(api *gin.RouterGroup, c *container.Container) {
	artists := api.Group("/artists")
	{
		artists.GET("", c.ArtistHandler.List)
		artists.GET("/:id", c.ArtistHandler.GetByID)
		artists.GET("/:id/images", c.ArtistHandler.Images)
		artists.POST("", c.ArtistHandler.Create)
		artists.PUT("/:id", c.ArtistHandler.Update)
		artists.DELETE("/:id", c.ArtistHandler.Delete)
	}
}

func setupGalleryRoutes(api *gin.RouterGroup, c *container.Container) {
	galleries := api.Group("/galleries")
	{
		galleries.GET("", c.GalleryHandler.List)
		galleries.GET("/:id", c.GalleryHandler.GetByID)
		galleries.POST("", c.GalleryHandler.Create)
		galleries.PUT("/:id", c.GalleryHandler.Update)
		galleries.DELETE("/:id", c.GalleryHandler.Delete)
	}
}

func setupKolRoutes(api *gin.RouterGroup, c *container.Container) {
	kols := api.Group("/kols")
	{
		kols.GET("", c.KolHandler.List)
		kols.GET("/:id", c.KolHandler.GetByID)
		kols.POST("", c.KolHandler.Create)
		kols.PUT("/:id", c.KolHandler.Update)
		kols.DELETE("/:id", c.KolHandler.Delete)
	}
}

func setupPetRoutes(api *gin.RouterGroup, c *container.Container) {
	pets := api.Group("/pets")
	{
		pets.GET("", c.PetHandler.List)
		pets.GET("/:id", c.PetHandler.GetByID)
		pets.POST("", c.PetHandler.Create)
		pets.PUT("/:id", c.PetHandler.Update)
		pets.DELETE("/:id", c.PetHandler.Delete)
	}
}

func setupTeamRoutes(api *gin.RouterGroup, c *container.Container) {
	teams := api.Group("/teams")
	{
		teams.GET("", c.TeamHandler.List)
		teams.GET("/:id", c.TeamHandler.GetByID)
		teams.POST("", c.TeamHandler.Create)
		teams.PUT("/:id", c.TeamHandler.Update)
		teams.DELETE("/:id", c.TeamHandler.Delete)
	}
}

func setupProjectRoutes(api *gin.RouterGroup, c *container.Container) {
	projects := api.Group("/projects")
	{
		projects.GET("", c.ProjectHandler.List)
		projects.GET("/public", c.ProjectHandler.Public)
		projects.GET("/:id", c.ProjectHandler.GetByID)
		projects.POST("", c.ProjectHandler.Create)
		projects.PUT("/:id", c.ProjectHandler.Update)
		projects.DELETE("/:id", c.ProjectHandler.Delete)
	}
}

// ========================================
// DASHBOARD & UPLOAD ROUTES
// ========================================
func setupDashboardRoutes(api *gin.RouterGroup, c *container.Container) {
	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/stats", c.DashboardHandler.Stats)
		dashboard.GET("/activities", c.DashboardHandler.Activities)
	}
}

func setupUploadRoutes(api *gin.RouterGroup, c *container.Container) {
	upload := api.Group("/upload")
	{
		upload.POST("/:kind", c.UploadHandler.Upload)
		upload.DELETE("/:kind/:fileName", c.UploadHandler.Delete)
	}
}

// ========================================
// HEALTH CHECK
// ========================================

type pinger interface {
	Ping(ctx context.Context) error
}

// cachePinger avoids wrapping a nil cache in a non-nil interface.
func cachePinger(c *container.Container) pinger {
	if c.Cache == nil {
		return nil
	}
	return c.Cache
}

func checkComponent(ctx context.Context, p pinger) string {
	if p == nil {
		return "disconnected"
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return "ok"
}

func healthCheckHandler(version string, store, redis pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		storeStatus := checkComponent(ctx, store)
		redisStatus := checkComponent(ctx, redis)

		status, code := "healthy", http.StatusOK
		if storeStatus != "ok" || redisStatus != "ok" {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   version,
			"services": gin.H{
				"docstore": storeStatus,
				"redis":    redisStatus,
			},
		})
	}
}
