package main // Entry point package

import (
	"context"
	"log" // Logging library
	"time"

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/gadget-market/internal/config"
	"github.com/iliyamo/gadget-market/internal/database"
	"github.com/iliyamo/gadget-market/internal/handler"
	"github.com/iliyamo/gadget-market/internal/middleware"
	"github.com/iliyamo/gadget-market/internal/queue"
	"github.com/iliyamo/gadget-market/internal/repository"
	"github.com/iliyamo/gadget-market/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	listings := repository.NewListingRepo(db)
	requests := repository.NewRequestRepo(db)
	orders := repository.NewOrderRepo(db)
	admin := repository.NewAdminRepo(db)

	// Seed the admin account when credentials are configured.
	if cfg.AdminPassword != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		created, err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost)
		cancel()
		if err != nil {
			log.Fatalf("admin bootstrap: %v", err)
		}
		if created {
			log.Printf("admin account created: %s", cfg.AdminEmail)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	listingHandler := handler.NewListingHandler(listings)
	requestHandler := handler.NewRequestHandler(listings, requests)
	orderHandler := handler.NewOrderHandler(listings, requests, orders)
	adminHandler := handler.NewAdminHandler(admin)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, listingHandler, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterMarket(e, listingHandler, requestHandler, orderHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	// Background consumer writes order events to logs/orders.log.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
