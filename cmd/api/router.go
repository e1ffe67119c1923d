package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"unispattes/internal/shared/middleware"
	"unispattes/internal/shared/response"
	"unispattes/pkg/container"
)

// Photo uploads are capped at 5MB by the image processor; leave room for the multipart envelope.
const maxMultipartMemory = 8 << 20

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.HTMLRender = c.Renderer
	router.MaxMultipartMemory = maxMultipartMemory

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(c.WebHandler.RenderError),
		middleware.ClientIP(),
		middleware.LoadSession(c.Sessions, c.LoadPrincipal),
	)

	router.GET("/health", healthCheckHandler(c))

	// Public site
	c.WebHandler.RegisterRoutes(router)

	admin := router.Group("/admin", middleware.RequireStaff())
	{
		setupAdoptionRoutes(admin, c)
		setupAnimalRoutes(admin, c)
		setupAccountRoutes(admin, c)
	}

	router.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/admin") {
			response.NotFound(ctx, "Ressource introuvable")
			return
		}
		c.WebHandler.NotFound(ctx)
	})

	return router
}

// ========================================
// ADOPTION REQUESTS (staff)
// ========================================
func setupAdoptionRoutes(admin *gin.RouterGroup, c *container.Container) {
	demandes := admin.Group("/demandes")
	{
		demandes.GET("", c.AdoptionHandler.List)
		demandes.GET("/export", c.AdoptionHandler.Export)

		demandes.POST("/bulk/accepter", c.AdoptionHandler.BulkAccept)
		demandes.POST("/bulk/refuser", c.AdoptionHandler.BulkRefuse)
		demandes.POST("/bulk/reinitialiser", c.AdoptionHandler.BulkReset)

		demandes.GET("/:id", c.AdoptionHandler.Get)
		demandes.POST("/:id/accepter/", c.AdoptionHandler.Accept)
		demandes.POST("/:id/refuser/", c.AdoptionHandler.Refuse)
		demandes.POST("/:id/reinitialiser/", c.AdoptionHandler.Reset)
		demandes.PATCH("/:id/notes", c.AdoptionHandler.UpdateNotes)
	}
}

// ========================================
// ANIMALS (staff)
// ========================================
func setupAnimalRoutes(admin *gin.RouterGroup, c *container.Container) {
	animaux := admin.Group("/animaux")
	{
		animaux.GET("", c.AnimalHandler.List)
		animaux.POST("", c.AnimalHandler.Create)
		animaux.GET("/:id", c.AnimalHandler.Get)
		animaux.PUT("/:id", c.AnimalHandler.Update)
		animaux.PATCH("/:id/disponible", c.AnimalHandler.SetAvailability)
		animaux.POST("/:id/photo", c.AnimalHandler.UploadPhoto)
		animaux.DELETE("/:id", c.AnimalHandler.Delete)
	}
}

// ========================================
// ACCOUNTS (staff)
// ========================================
func setupAccountRoutes(admin *gin.RouterGroup, c *container.Container) {
	utilisateurs := admin.Group("/utilisateurs")
	{
		utilisateurs.GET("", c.AccountHandler.List)
		utilisateurs.POST("/:id/deverrouiller", c.AccountHandler.Unlock)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		status := c.HealthCheck(checkCtx)
		if status["database"] != "up" {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "checks": status})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"checks":  status,
			"version": c.Config.App.Version,
		})
	}
}
