package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"venuehub/internal/config"
	"venuehub/internal/domain/admin"
	"venuehub/internal/domain/auth"
	"venuehub/internal/domain/booking"
	"venuehub/internal/domain/catalog"
	"venuehub/internal/domain/chat"
	"venuehub/internal/domain/media"
	"venuehub/internal/domain/notification"
	"venuehub/internal/domain/payment"
	"venuehub/internal/domain/planning"
	"venuehub/internal/domain/review"
	"venuehub/internal/middleware"
	"venuehub/internal/pkg/events"
	jwtsvc "venuehub/internal/pkg/jwt"
	"venuehub/internal/pkg/mailer"
)

// newRouter wires every module onto one engine. rdb may be nil.
func newRouter(cfg *config.Config, db *gorm.DB, rdb *redis.Client, pub events.Publisher, mail mailer.Mailer, gateway payment.Gateway, log *logrus.Logger) *gin.Engine {
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	// realtime + notifications
	hub := chat.NewHub(cfg.CORSAllowedOrigins, log)
	notifService := notification.NewService(notification.NewRepository(db), hub, log)
	notifHandler := notification.NewHandler(notifService)

	chatService := chat.NewService(chat.NewRepository(db), hub, notifService, log)
	chatHandler := chat.NewHandler(chatService, hub, j, log)

	// identity
	userRepo := auth.NewUserRepository(db)
	authHandler := auth.NewHandler(auth.NewService(userRepo, j, log))

	// catalog
	var listingCache *catalog.ListingCache
	if cfg.Cache.Enabled {
		listingCache = catalog.NewListingCache(rdb, cfg.Cache.Prefix, cfg.Cache.TTL)
	}
	catalogService := catalog.NewService(catalog.NewRepository(db), listingCache, notifService, log)
	catalogHandler := catalog.NewHandler(catalogService)

	// lifecycle
	bookingService := booking.NewService(booking.NewRepository(db), notifService, pub, mail, cfg.Booking, log)
	bookingHandler := booking.NewHandler(bookingService)

	paymentLog := log.WithField("component", "payment")
	paymentService := payment.NewService(payment.NewRepository(db), gateway, notifService, pub, cfg.Payment, paymentLog)
	paymentHandler := payment.NewHandler(paymentService, paymentLog)

	reviewHandler := review.NewHandler(review.NewService(review.NewRepository(db), notifService, pub, log))

	adminService := admin.NewService(admin.NewRepository(db), catalogService, userRepo, notifService, log)
	adminHandler := admin.NewHandler(adminService)

	mediaHandler := media.NewHandler(media.NewService(media.NewRepository(db), cfg.Media, log))

	planningHandler := planning.NewHandler(planning.NewService(planning.NewRepository(db), notifService, log))

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(log),
		middleware.AccessLog(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Static(cfg.Media.URLPrefix, cfg.Media.Dir)

	writeLimit := middleware.RateLimit(cfg.RateLimit, rdb, log)

	v1 := r.Group("/api/v1")
	{
		public := v1.Group("")
		public.Use(middleware.OptionalJWTAuth(j))
		authHandler.RegisterPublicRoutes(public)
		catalogHandler.RegisterPublicRoutes(public)
		paymentHandler.RegisterPublicRoutes(public)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))
		authHandler.RegisterProtectedRoutes(protected)
		catalogHandler.RegisterProtectedRoutes(protected)
		bookingHandler.RegisterRoutes(protected, writeLimit)
		paymentHandler.RegisterProtectedRoutes(protected, writeLimit)
		reviewHandler.RegisterRoutes(public, protected)
		notifHandler.RegisterRoutes(protected)
		chatHandler.RegisterRoutes(public, protected)
		adminHandler.RegisterVerificationRoutes(protected)
		planningHandler.RegisterRoutes(protected)
		mediaHandler.RegisterRoutes(protected, writeLimit)

		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		adminHandler.RegisterRoutes(adminGroup)
		bookingHandler.RegisterAdminRoutes(adminGroup)
		reviewHandler.RegisterAdminRoutes(adminGroup)
		planningHandler.RegisterAdminRoutes(adminGroup)

		internal := v1.Group("/internal")
		internal.Use(middleware.InternalTokenAuth(cfg.InternalToken, log))
		bookingHandler.RegisterInternalRoutes(internal)
	}

	return r
}
