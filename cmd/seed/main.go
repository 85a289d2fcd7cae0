package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"sahayak/internal/config"
	"sahayak/internal/database"
	"sahayak/internal/modules/auth"
	"sahayak/internal/modules/booking"
	"sahayak/internal/modules/catalog"
	"sahayak/internal/modules/rating"
	jwtsvc "sahayak/internal/pkg/jwt"
	"sahayak/internal/pkg/logger"
	"sahayak/internal/relay"
	"sahayak/internal/repository"
)

type seedService struct {
	name        string
	description string
	price       float64
}

type seedCategory struct {
	name        string
	description string
	services    []seedService
}

var catalogSeed = []seedCategory{
	{
		name:        "Plumbing",
		description: "Leaks, fittings and bathroom installs",
		services: []seedService{
			{"Tap repair", "Fix or replace a leaking tap", 299},
			{"Drain unclogging", "Kitchen or bathroom drain", 449},
			{"Water tank cleaning", "Overhead tank up to 1000L", 899},
		},
	},
	{
		name:        "Electrical",
		description: "Wiring, switches and appliance points",
		services: []seedService{
			{"Switchboard repair", "Replace switches and sockets", 249},
			{"Ceiling fan installation", "Mount and wire one fan", 399},
		},
	},
	{
		name:        "Cleaning",
		description: "Home and kitchen deep cleaning",
		services: []seedService{
			{"Kitchen deep clean", "Chimney, hob and tiles", 1499},
			{"Full home cleaning", "2BHK standard clean", 2999},
		},
	},
	{
		name:        "Carpentry",
		description: "Furniture repair and fittings",
		services: []seedService{
			{"Door lock fitting", "Install or replace a lock", 349},
			{"Furniture assembly", "Bed, wardrobe or table", 799},
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, lg)
	if err != nil {
		lg.Fatal("db connect failed", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(db); err != nil {
		lg.Fatal("migrate failed", zap.Error(err))
	}

	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// Seeding never talks to the realtime server.
	dispatcher := relay.NewDispatcher(relay.Noop{}, lg, cfg.RelayTimeout)
	defer func() { _ = dispatcher.Close() }()

	catalogService := catalog.NewService(catalogRepo, lg)
	authService := auth.NewService(userRepo, providerRepo, jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL), lg)
	bookingService := booking.NewService(bookingRepo, catalogRepo, providerRepo, dispatcher, lg)
	ratingService := rating.NewService(ratingRepo, bookingRepo, lg)

	existing, err := catalogService.ListCategories(ctx)
	if err != nil {
		lg.Fatal("list categories failed", zap.Error(err))
	}
	if len(existing) > 0 {
		lg.Info("catalog already seeded, nothing to do", zap.Int("categories", len(existing)))
		return
	}

	if err := authService.EnsureAdmin(ctx, "admin@sahayak.local", "admin123"); err != nil {
		lg.Fatal("seed admin failed", zap.Error(err))
	}

	firstService := map[string]string{}
	for _, sc := range catalogSeed {
		cat, err := catalogService.CreateCategory(ctx, catalog.CreateCategoryRequest{
			Name:        sc.name,
			Description: sc.description,
		})
		if err != nil {
			lg.Fatal("create category failed", zap.String("category", sc.name), zap.Error(err))
		}
		for i, s := range sc.services {
			svc, err := catalogService.CreateService(ctx, catalog.CreateServiceRequest{
				Name:        s.name,
				Description: s.description,
				Price:       s.price,
				CategoryID:  cat.ID,
			})
			if err != nil {
				lg.Fatal("create service failed", zap.String("service", s.name), zap.Error(err))
			}
			if i == 0 {
				firstService[cat.ID] = svc.ID
			}
		}
	}
	lg.Info("catalog seeded", zap.Int("categories", len(catalogSeed)))

	customer, err := authService.RegisterUser(ctx, auth.RegisterUserRequest{
		Name:     "Asha Verma",
		Email:    "asha@sahayak.local",
		Phone:    "+919800000001",
		Password: "password123",
	})
	if err != nil {
		lg.Fatal("seed customer failed", zap.Error(err))
	}

	var demo *auth.AuthResult
	i := 0
	for categoryID := range firstService {
		i++
		res, err := authService.RegisterProvider(ctx, auth.RegisterProviderRequest{
			Name:       "Provider " + string(rune('A'+i-1)),
			Email:      "provider" + string(rune('a'+i-1)) + "@sahayak.local",
			Password:   "password123",
			CategoryID: categoryID,
			Experience: 2 + i,
		})
		if err != nil {
			lg.Fatal("seed provider failed", zap.Error(err))
		}
		if demo == nil {
			demo = res
		}
	}

	// One finished job so provider profiles show a rating.
	categoryID := demo.Provider.CategoryID
	b, err := bookingService.Create(ctx, customer.User.ID, booking.CreateBookingRequest{
		ServiceID: firstService[categoryID],
		Date:      time.Now().Add(-72 * time.Hour),
	})
	if err != nil {
		lg.Fatal("seed booking failed", zap.Error(err))
	}
	if _, err := bookingService.Accept(ctx, b.ID, demo.Provider.ID); err != nil {
		lg.Fatal("seed accept failed", zap.Error(err))
	}
	if _, err := bookingService.Complete(ctx, b.ID, demo.Provider.ID); err != nil {
		lg.Fatal("seed complete failed", zap.Error(err))
	}
	if _, err := ratingService.Create(ctx, customer.User.ID, b.ID, 5, "Quick and tidy work"); err != nil {
		lg.Fatal("seed rating failed", zap.Error(err))
	}

	lg.Info("seed completed",
		zap.String("admin", "admin@sahayak.local"),
		zap.String("customer", customer.User.Email),
		zap.Int("providers", len(firstService)),
	)
}
