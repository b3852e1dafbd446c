package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-be/internal/config"
	"marketplace-be/internal/db"
	"marketplace-be/internal/handler"
	"marketplace-be/internal/listing"
	"marketplace-be/internal/logger"
	"marketplace-be/internal/metrics"
	"marketplace-be/internal/middleware"
	"marketplace-be/internal/order"
	"marketplace-be/internal/product"
	"marketplace-be/internal/store"
	"marketplace-be/internal/user"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type repositories struct {
	users    user.Repository
	stores   store.Repository
	products product.Repository
	orders   order.Repository
	listings listing.Repository
}

func newRepositories(cfg *config.Config) (repositories, func()) {
	if cfg.StorageBackend == "memory" {
		return repositories{
			users:    user.NewMemoryRepository(),
			stores:   store.NewMemoryRepository(),
			products: product.NewMemoryRepository(),
			orders:   order.NewMemoryRepository(),
			listings: listing.NewMemoryRepository(),
		}, func() {}
	}

	database := db.InitDB(cfg)
	return repositories{
		users:    user.NewRepository(database),
		stores:   store.NewRepository(database),
		products: product.NewRepository(database),
		orders:   order.NewRepository(database),
		listings: listing.NewRepository(database),
	}, func() { database.Close() }
}

func main() {
	mem := flag.Bool("mem", false, "use the in-memory backend")
	flag.Parse()

	cfg := config.LoadConfig()
	if *mem {
		cfg.StorageBackend = "memory"
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	metrics.Init("marketplace")

	repos, closeRepos := newRepositories(cfg)
	defer closeRepos()

	storeSvc := store.NewService(repos.stores, store.OwnerDirectoryFunc(
		func(ctx context.Context, ownerID string) (string, error) {
			u, err := repos.users.GetByID(ctx, ownerID)
			if err != nil {
				return "", err
			}
			if u.City == nil {
				return "", nil
			}
			return *u.City, nil
		}))
	userSvc := user.NewService(repos.users, storeSvc)
	productSvc := product.NewService(repos.products, storeSvc)
	orderSvc := order.NewService(repos.orders, storeSvc, productSvc)
	listingSvc := listing.NewService(repos.listings)

	if cfg.SeedDemoData {
		if err := db.Seed(context.Background(), db.SeedStores{
			Users:    repos.users,
			Stores:   repos.stores,
			Products: repos.products,
			Listings: repos.listings,
		}); err != nil {
			log.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(logger.RequestIDMiddleware)
	e.Use(logger.LoggingMiddleware)
	e.Use(middleware.Metrics)
	e.Use(middleware.OptionalAuth)
	e.Use(middleware.RateLimit)

	handler.RegisterRoutes(e, handler.Handlers{
		Auth:     handler.NewAuthHandler(userSvc),
		Users:    handler.NewUserHandler(userSvc),
		Stores:   handler.NewStoreHandler(storeSvc),
		Products: handler.NewProductHandler(productSvc, storeSvc),
		Orders:   handler.NewOrderHandler(orderSvc, storeSvc),
		Listings: listingSvc,
	})

	go func() {
		log.Info("server listening",
			zap.String("port", cfg.AppPort),
			zap.String("backend", cfg.StorageBackend),
		)
		if err := e.Start(":" + cfg.AppPort); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
