package main

import (
	"log"
	"net/http"

	_ "chirpfeed/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"chirpfeed/internal/auth"
	"chirpfeed/internal/cache"
	"chirpfeed/internal/config"
	"chirpfeed/internal/db"
	"chirpfeed/internal/handler"
	"chirpfeed/internal/imagegen"
	"chirpfeed/internal/model"
	"chirpfeed/internal/repository"
	"chirpfeed/internal/router"
	"chirpfeed/internal/service"
	"chirpfeed/internal/ws"
)

// @title Chirpfeed API
// @version 1.0
// @description Social feed API: accounts, posts with likes and comments, follows, realtime messaging and AI image generation.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Post{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, cacheClient)
	postService := service.NewPostService(postRepo, userService)
	imageService := service.NewImageService(imagegen.NewClient(cfg.HFAPIKey, cfg.HFModel))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, imageService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)

	// Realtime fan-out registry, one per process
	hub := ws.NewHub()

	// Register routes
	router.Register(e, cfg, hub, authHandler, userHandler, postHandler)

	addr := ":" + cfg.ServerPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
