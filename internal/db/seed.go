package db

import (
	"context"
	"errors"

	"marketplace-be/internal/listing"
	"marketplace-be/internal/logger"
	"marketplace-be/internal/product"
	"marketplace-be/internal/store"
	"marketplace-be/internal/user"

	"go.uber.org/zap"
)

// SeedStores is the set of repositories the demo seed writes into. The
// seed is backend-agnostic so the memory backend can boot with data too.
type SeedStores struct {
	Users    user.Repository
	Stores   store.Repository
	Products product.Repository
	Listings listing.Repository
}

// Seed populates demo data on a fresh install: an admin account, a demo
// merchant with one store and sample products, and a couple of public
// listings. It is a no-op when the admin user already exists.
func Seed(ctx context.Context, s SeedStores) error {
	log := logger.FromCtx(ctx)

	if _, err := s.Users.GetByUsername(ctx, "admin"); err == nil {
		log.Info("seed skipped, admin user already exists")
		return nil
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return err
	}

	adminHash, err := user.HashPassword("admin123")
	if err != nil {
		return err
	}
	if _, err := s.Users.Create(ctx, user.CreateParams{
		Username:     "admin",
		Email:        "admin@marketplace.local",
		PasswordHash: adminHash,
		FullName:     "Administrator",
		Role:         user.RoleAdmin,
	}); err != nil {
		return err
	}

	merchantHash, err := user.HashPassword("merchant123")
	if err != nil {
		return err
	}
	city := "Almaty"
	merchant, err := s.Users.Create(ctx, user.CreateParams{
		Username:     "demo_merchant",
		Email:        "merchant@marketplace.local",
		PasswordHash: merchantHash,
		FullName:     "Demo Merchant",
		City:         &city,
		Role:         user.RoleMerchant,
	})
	if err != nil {
		return err
	}

	settings := store.DefaultSettings()
	settings["category"] = "electronics"
	demoStore, err := s.Stores.Create(ctx, store.CreateParams{
		OwnerID:  merchant.ID,
		Name:     "Demo Electronics",
		Settings: settings,
	})
	if err != nil {
		return err
	}

	samples := []product.CreateParams{
		{StoreID: demoStore.ID, Name: "Wireless Mouse", Price: "15.99", Category: "electronics", Stock: 40},
		{StoreID: demoStore.ID, Name: "USB-C Cable", Price: "4.50", Category: "electronics", Stock: 120},
		{StoreID: demoStore.ID, Name: "Mechanical Keyboard", Price: "79.00", Category: "electronics", Stock: 12},
	}
	for _, p := range samples {
		if _, err := s.Products.Create(ctx, p); err != nil {
			return err
		}
	}

	if _, err := s.Listings.Create(ctx, listing.CreateParams{
		Kind:    listing.KindRestaurant,
		OwnerID: merchant.ID,
		Title:   "Demo Sushi Bar",
		City:    &city,
	}); err != nil {
		return err
	}
	if _, err := s.Listings.Create(ctx, listing.CreateParams{
		Kind:    listing.KindJob,
		OwnerID: merchant.ID,
		Title:   "Warehouse Assistant",
		City:    &city,
	}); err != nil {
		return err
	}

	log.Info("demo data seeded",
		zap.String("merchant_id", merchant.ID),
		zap.String("store_id", demoStore.ID),
	)
	return nil
}
