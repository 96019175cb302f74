package router

import (
	"net/http"

	"forkful/internal/config"
	"forkful/internal/handlers"
	"forkful/internal/middleware"
	"forkful/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires services, handlers and both authentication
// strategies. Page routes ride the session; /api routes ride bearer tokens.
func RegisterRoutes(r *gin.Engine, cfg *config.Config) {
	// Services
	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTTTL)
	restaurantService := services.NewRestaurantService()
	engagementService := services.NewEngagementService()
	commentService := services.NewCommentService()
	imageService := services.NewImageService(cfg.ImgurClientID)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService, engagementService)
	userHandler := handlers.NewUserHandler(engagementService, imageService)
	commentHandler := handlers.NewCommentHandler(commentService)
	adminHandler := handlers.NewAdminHandler(restaurantService, imageService)
	apiHandler := handlers.NewAPIHandler(authService, restaurantService)

	// Session user resolution for every page route
	r.Use(middleware.LoadUser(authService))

	// Public routes
	r.GET("/signup", authHandler.ShowSignUp)
	r.POST("/signup", authHandler.SignUp)
	r.GET("/signin", authHandler.ShowSignIn)
	r.POST("/signin", authHandler.SignIn)
	r.GET("/logout", authHandler.Logout)

	// Protected page routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/restaurants", restaurantHandler.List)
		authorized.GET("/restaurants/top", restaurantHandler.Top)
		authorized.GET("/restaurants/feeds", restaurantHandler.Feeds)
		authorized.GET("/restaurants/:id", restaurantHandler.Detail)
		authorized.GET("/restaurants/:id/dashboard", restaurantHandler.Dashboard)

		authorized.GET("/users/top", userHandler.Top)
		authorized.GET("/users/:id", userHandler.Profile)
		authorized.GET("/users/:id/edit", userHandler.ShowEdit)
		authorized.PUT("/users/:id", userHandler.Update)

		authorized.POST("/comments", commentHandler.Create)
		authorized.DELETE("/comments/:id", middleware.AdminRequired(), commentHandler.Delete)

		authorized.POST("/favorite/:restaurantId", userHandler.AddFavorite)
		authorized.DELETE("/favorite/:restaurantId", userHandler.RemoveFavorite)

		authorized.POST("/like/:restaurantId", userHandler.AddLike)
		authorized.DELETE("/like/:restaurantId", userHandler.RemoveLike)

		authorized.POST("/following/:userId", userHandler.AddFollowing)
		authorized.DELETE("/following/:userId", userHandler.RemoveFollowing)
	}

	// Admin back office
	admin := r.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/restaurants", adminHandler.ListRestaurants)
		admin.GET("/restaurants/new", adminHandler.ShowCreateRestaurant)
		admin.POST("/restaurants", adminHandler.CreateRestaurant)
		admin.GET("/restaurants/:id", adminHandler.ShowRestaurant)
		admin.GET("/restaurants/:id/edit", adminHandler.ShowEditRestaurant)
		admin.PUT("/restaurants/:id", adminHandler.UpdateRestaurant)
		admin.DELETE("/restaurants/:id", adminHandler.DeleteRestaurant)

		admin.GET("/users", adminHandler.ListUsers)
		admin.PATCH("/users/:id", adminHandler.ToggleAdmin)

		admin.GET("/categories", adminHandler.ListCategories)
		admin.POST("/categories", adminHandler.CreateCategory)
		admin.PUT("/categories/:id", adminHandler.UpdateCategory)
		admin.DELETE("/categories/:id", adminHandler.DeleteCategory)
	}

	// JSON API
	api := r.Group("/api")
	{
		api.POST("/signin", apiHandler.SignIn)

		protected := api.Group("/")
		protected.Use(middleware.BearerAuth(authService))
		{
			protected.GET("/restaurants", apiHandler.ListRestaurants)
		}
	}

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/restaurants")
	})
}
