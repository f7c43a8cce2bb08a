package routes

import (
	"time"

	"megaexe/handlers"
	"megaexe/middleware"
	"megaexe/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(sessions session.Store) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5000", "http://127.0.0.1:5000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public routes (no auth required)
	router.POST("/register", handlers.Register)
	router.POST("/login", handlers.Login)
	router.POST("/logout", handlers.Logout)
	router.GET("/", handlers.ListPosts)
	router.GET("/sortedPosts", handlers.SortedPosts)
	router.GET("/:id/comments", handlers.GetComments)

	// Every mutation sits behind the session gate
	protected := router.Group("/")
	protected.Use(middleware.SessionAuth(sessions))

	protected.POST("/", handlers.CreatePost)
	protected.PUT("/:id", handlers.EditPost)
	protected.DELETE("/:id", handlers.DeletePost)
	protected.POST("/:id/upvote", handlers.UpvotePost)
	protected.POST("/:id/downvote", handlers.DownvotePost)
	protected.POST("/:id/comments", handlers.AddComment)
	protected.POST("/:id/comments/:commentId/reply", handlers.AddReply)

	return router
}
