package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"rideboard/internal/config"
	"rideboard/internal/handlers"
	"rideboard/internal/middleware"
	"rideboard/internal/repositories/mongodb"
	"rideboard/internal/services"
	"rideboard/pkg/cache"
	"rideboard/pkg/database"
	"rideboard/pkg/logger"
	"rideboard/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Colors: cfg.App.Debug,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Connect to the document store
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureGroupIndexes(ctx, cfg.Schedule.GroupsCollection); err != nil {
		cancel()
		appLogger.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	// Redis is optional; without it schedules render uncached.
	var scheduleCache services.CacheService
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Warn("Redis unavailable, schedule caching disabled")
		} else {
			scheduleCache = redisCache
			defer redisCache.Close()
		}
	}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		appLogger.Warnf("Unknown timezone %q, falling back to UTC", cfg.App.Timezone)
		location = time.UTC
	}

	// Wire repositories and services
	groupRepo := mongodb.NewGroupRepository(db.Database, cfg.Schedule.GroupsCollection)
	rideService := services.NewRideService(groupRepo, scheduleCache, appLogger)
	scheduleService := services.NewScheduleService(groupRepo, scheduleCache, location, cfg.Schedule.CacheTTL, appLogger)

	sweeper := services.NewSweeperService(rideService, groupRepo, cfg.Schedule.SweepInterval, appLogger)
	sweeper.Start()
	defer sweeper.Stop()

	// Initialize handlers
	rideHandler := handlers.NewRideHandler(rideService, scheduleService)

	// Initialize Gin router
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		appLogger.Fatalf("Invalid trusted proxies: %v", err)
	}

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())

	// API routes
	v1 := router.Group("/api/v1")
	{
		routes.SetupRideRoutes(v1, rideHandler, cfg.Security.BotTokenSecret)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.Infof("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		appLogger.Fatalf("Server stopped: %v", err)
	}
}
