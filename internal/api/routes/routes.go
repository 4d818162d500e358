package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/launchpool/launchpool/internal/api/handlers"
	"github.com/launchpool/launchpool/internal/api/middleware"
)

type Deps struct {
	Match *handlers.MatchHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.GET("/matches/recommendations", d.Match.Recommendations)
	auth.GET("/matches/projects/:project_id", d.Match.Score)
	auth.POST("/matches/projects/:project_id/action", d.Match.Action)
	auth.GET("/matches/history", d.Match.History)

	// Admin analytics
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/matches/history/:user_id", d.Match.AdminHistory)
}
