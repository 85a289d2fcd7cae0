// Package app assembles repositories, services and handlers into the HTTP
// router served by cmd/api.
package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sahayak/internal/config"
	"sahayak/internal/middleware"
	"sahayak/internal/modules/admin"
	"sahayak/internal/modules/auth"
	"sahayak/internal/modules/booking"
	"sahayak/internal/modules/catalog"
	"sahayak/internal/modules/chat"
	"sahayak/internal/modules/chatbot"
	"sahayak/internal/modules/payment"
	"sahayak/internal/modules/provider"
	"sahayak/internal/modules/rating"
	"sahayak/internal/modules/ticket"
	"sahayak/internal/pkg/jwt"
	"sahayak/internal/pkg/storage"
	"sahayak/internal/relay"
	"sahayak/internal/repository"
)

// Notifier is the fire-and-forget side of *relay.Dispatcher.
type Notifier interface {
	Fire(event relay.Event, payload any)
}

type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Log      *zap.Logger
	JWT      *jwt.Service
	Notifier Notifier
	Limiter  middleware.Limiter
	Store    storage.Store
	Gateway  payment.Gateway
	// Completer may be nil; the chatbot then answers 503.
	Completer chatbot.Completer
}

type App struct {
	Router *gin.Engine
	Auth   *auth.Service
}

func New(d Deps) *App {
	cfg := d.Config

	userRepo := repository.NewUserRepository(d.DB)
	providerRepo := repository.NewProviderRepository(d.DB)
	catalogRepo := repository.NewCatalogRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	ratingRepo := repository.NewRatingRepository(d.DB)
	ticketRepo := repository.NewTicketRepository(d.DB)
	messageRepo := repository.NewMessageRepository(d.DB)

	authService := auth.NewService(userRepo, providerRepo, d.JWT, d.Log)
	catalogService := catalog.NewService(catalogRepo, d.Log)
	bookingService := booking.NewService(bookingRepo, catalogRepo, providerRepo, d.Notifier, d.Log)
	ratingService := rating.NewService(ratingRepo, bookingRepo, d.Log)
	paymentService := payment.NewService(bookingRepo, d.Gateway, d.Notifier, cfg.PaymentCurrency, d.Log)
	chatService := chat.NewService(bookingRepo, messageRepo, d.Notifier, d.Log)
	ticketService := ticket.NewService(ticketRepo, bookingRepo, d.Log)
	adminService := admin.NewService(userRepo, providerRepo, bookingRepo, d.Log)
	providerService := provider.NewService(providerRepo, ratingRepo, d.Store, d.Log)
	chatbotService := chatbot.NewService(d.Completer, d.Log)

	authHandler := auth.NewHandler(authService, cfg.JWTTTL, cfg.IsProdLike())
	catalogHandler := catalog.NewHandler(catalogService)
	bookingHandler := booking.NewHandler(bookingService)
	ratingHandler := rating.NewHandler(ratingService)
	paymentHandler := payment.NewHandler(paymentService, cfg.PaymentSuccessURL, cfg.PaymentFailureURL, d.Log)
	chatHandler := chat.NewHandler(chatService)
	ticketHandler := ticket.NewHandler(ticketService)
	adminHandler := admin.NewHandler(adminService)
	providerHandler := provider.NewHandler(providerService)
	chatbotHandler := chatbot.NewHandler(chatbotService)

	r := gin.New()
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	if d.Limiter != nil {
		r.Use(middleware.RateLimit(d.Limiter, d.Log))
	}

	if local, ok := d.Store.(*storage.LocalStore); ok {
		r.Static(cfg.UploadBaseURL, local.BaseDir())
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		providerHandler.RegisterPublicRoutes(v1)
		ratingHandler.RegisterRoutes(v1, nil)
		paymentHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("", middleware.JWTAuth(d.JWT, authService))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			ratingHandler.RegisterRoutes(nil, protected)
			paymentHandler.RegisterProtectedRoutes(protected)
			chatHandler.RegisterRoutes(protected)
			ticketHandler.RegisterRoutes(protected)
			providerHandler.RegisterProtectedRoutes(protected)
			chatbotHandler.RegisterRoutes(protected)

			adminGroup := protected.Group("/admin", middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
				catalogHandler.RegisterAdminRoutes(adminGroup)
				ticketHandler.RegisterAdminRoutes(adminGroup)
			}
		}
	}

	return &App{Router: r, Auth: authService}
}
