package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"keepsake-be/internal/cache"
	"keepsake-be/internal/config"
	"keepsake-be/internal/controllers"
	"keepsake-be/internal/database"
	"keepsake-be/internal/jwt"
	"keepsake-be/internal/middleware"
	"keepsake-be/internal/repository"
	"keepsake-be/internal/service"
	"keepsake-be/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations; the server only starts listening once the
	// schema is in sync
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize file storage for uploads
	fileStore, err := storage.NewFileStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	imageRepo := repository.NewImageRepository(db)
	birthdayRepo := repository.NewBirthdayRepository(db)

	// Initialize JWT token service
	tokenService := jwt.NewTokenService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTLHours)*time.Hour,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService)
	imageService := service.NewImageService(imageRepo, fileStore, cacheClient)
	birthdayService := service.NewBirthdayService(birthdayRepo)

	// Initialize controllers
	dev := cfg.IsDevelopment()
	authController := controllers.NewAuthController(authService, dev)
	imageController := controllers.NewImageController(imageService, dev)
	birthdayController := controllers.NewBirthdayController(birthdayService, dev)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	// Create a Gin router
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "users, images and birthdays API",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Uploaded images are served statically
	router.Static("/uploads", fileStore.Dir())

	authRequired := middleware.AuthMiddleware(tokenService, userRepo)

	// API routes group with general rate limiting
	api := router.Group("/api")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Auth routes with stricter rate limiting
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.GET("/profile", authRequired, authController.GetProfile)
			auth.GET("/users", authRequired, middleware.AdminMiddleware(), authController.ListUsers)
		}

		// Image routes - require JWT authentication
		images := api.Group("/images")
		images.Use(authRequired)
		{
			images.POST("", imageController.Upload)
			images.GET("", imageController.List)
			images.GET("/:id", imageController.GetByID)
			images.PUT("/:id", imageController.Update)
			images.DELETE("/:id", imageController.Delete)
		}

		// Birthday routes - require JWT authentication
		birthdays := api.Group("/birthdays")
		birthdays.Use(authRequired)
		{
			birthdays.POST("", birthdayController.Create)
			birthdays.GET("", birthdayController.List)
			birthdays.GET("/:id", birthdayController.GetByID)
			birthdays.PUT("/:id", birthdayController.Update)
			birthdays.DELETE("/:id", birthdayController.Delete)
		}
	}

	// Start the server
	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
