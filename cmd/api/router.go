package main

import (
	"github.com/gin-gonic/gin"

	"blogicum-backend/internal/shared/middleware"
	"blogicum-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.GET("/health", healthCheckHandler(c))

	// The home feed
	router.GET("/", middleware.AuthOptional(c.JWTManager), c.PostHandler.ListHome)

	setupAuthRoutes(router, c)
	setupPostRoutes(router, c)
	setupProfileRoutes(router, c)
	setupCategoryRoutes(router, c)
	setupLocationRoutes(router, c)

	return router
}

// =====================================================
// AUTH ROUTES
// =====================================================
func setupAuthRoutes(router *gin.Engine, c *container.Container) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

// =====================================================
// POST ROUTES
// =====================================================
func setupPostRoutes(router *gin.Engine, c *container.Container) {
	optional := middleware.AuthOptional(c.JWTManager)
	required := middleware.AuthRequired(c.JWTManager)

	posts := router.Group("/posts")
	{
		posts.GET("/create", required, c.PostHandler.NewPost)
		posts.POST("/create", required, c.PostHandler.CreatePost)
		posts.GET("/export", required, c.PostHandler.ExportPosts)

		// Detail is public; the principal only matters for draft visibility.
		posts.GET("/:post_id", optional, c.PostHandler.GetDetail)

		posts.GET("/:post_id/edit", required, c.PostHandler.EditPost)
		posts.POST("/:post_id/edit", required, c.PostHandler.UpdatePost)
		posts.GET("/:post_id/delete", required, c.PostHandler.ConfirmDeletePost)
		posts.POST("/:post_id/delete", required, c.PostHandler.DeletePost)
		posts.POST("/:post_id/image", required, c.PostHandler.UploadImage)

		posts.GET("/:post_id/comment", required, c.CommentHandler.NewComment)
		posts.POST("/:post_id/comment", required, c.CommentHandler.CreateComment)
		posts.GET("/:post_id/edit_comment/:comment_id", required, c.CommentHandler.EditComment)
		posts.POST("/:post_id/edit_comment/:comment_id", required, c.CommentHandler.UpdateComment)
		posts.POST("/:post_id/delete_comment/:comment_id", required, c.CommentHandler.DeleteComment)
	}
}

// =====================================================
// PROFILE ROUTES
// =====================================================
func setupProfileRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/profile/:username", middleware.AuthOptional(c.JWTManager), c.UserHandler.Profile)

	required := middleware.AuthRequired(c.JWTManager)
	router.GET("/edit_profile", required, c.UserHandler.EditProfileForm)
	router.POST("/edit_profile", required, c.UserHandler.UpdateProfile)
}

// =====================================================
// CATEGORY ROUTES
// =====================================================
func setupCategoryRoutes(router *gin.Engine, c *container.Container) {
	// Public category page
	router.GET("/category/:slug", middleware.AuthOptional(c.JWTManager), c.CategoryHandler.ListByCategory)

	// Administrative surface
	categories := router.Group("/categories")
	categories.Use(middleware.AuthRequired(c.JWTManager))
	{
		categories.GET("", c.CategoryHandler.ListCategories)
		categories.POST("", c.CategoryHandler.CreateCategory)
		categories.PUT("/:id", c.CategoryHandler.UpdateCategory)
		categories.DELETE("/:id", c.CategoryHandler.DeleteCategory)
	}
}

// =====================================================
// LOCATION ROUTES
// =====================================================
func setupLocationRoutes(router *gin.Engine, c *container.Container) {
	locations := router.Group("/locations")
	locations.Use(middleware.AuthRequired(c.JWTManager))
	{
		locations.GET("", c.LocationHandler.ListLocations)
		locations.POST("", c.LocationHandler.CreateLocation)
		locations.PUT("/:id", c.LocationHandler.UpdateLocation)
		locations.DELETE("/:id", c.LocationHandler.DeleteLocation)
	}
}
