package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"serendibgo/internal/config"
	"serendibgo/internal/handlers/staff"
	"serendibgo/internal/middleware"
	"serendibgo/internal/permissions"
	"serendibgo/internal/repositories/mongodb"
	"serendibgo/internal/services"
	"serendibgo/internal/utils"
	"serendibgo/pkg/cache"
	"serendibgo/pkg/database"
	"serendibgo/pkg/logger"
	"serendibgo/pkg/payment"
	"serendibgo/pkg/sms"
	"serendibgo/pkg/storage"
	"serendibgo/routes"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		Caller:     cfg.Logging.Caller,
		AppName:    cfg.App.Name,
		Version:    cfg.App.Version,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	ctx := context.Background()

	mongo, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer mongo.Close()

	if cfg.Database.RunMigrations {
		if err := database.NewMigrator(mongo.Database, appLogger).Up(ctx); err != nil {
			appLogger.WithError(err).Fatal("Failed to run migrations")
		}
	}

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
		appLogger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()
	blacklist := cache.NewTokenBlacklist(redisCache, utils.RevokedTokenPrefix)

	reportStore, err := storage.New(ctx, storage.Config{
		Provider:           cfg.Storage.Provider,
		LocalBasePath:      cfg.Storage.Local.BasePath,
		LocalBaseURL:       cfg.Storage.Local.BaseURL,
		AWSRegion:          cfg.Storage.AWS.Region,
		AWSBucket:          cfg.Storage.AWS.Bucket,
		AWSCDNDomain:       cfg.Storage.AWS.CDNDomain,
		GCPBucket:          cfg.Storage.GCP.Bucket,
		GCPCredentialsFile: cfg.Storage.GCP.CredentialsFile,
		GCPCDNDomain:       cfg.Storage.GCP.CDNDomain,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize report storage")
	}

	notifier, err := sms.New(ctx, sms.Config{
		Provider:         cfg.SMS.Provider,
		TwilioAccountSID: cfg.SMS.Twilio.AccountSID,
		TwilioAuthToken:  cfg.SMS.Twilio.AuthToken,
		TwilioFromNumber: cfg.SMS.Twilio.FromNumber,
		AWSRegion:        cfg.SMS.AWS.Region,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize SMS provider")
	}
	if notifier == nil {
		appLogger.Info("SMS notifications disabled")
	}

	var refunds payment.RefundProvider
	if cfg.Payment.Enabled() {
		refunds = payment.NewStripeProvider(cfg.Payment.Stripe.SecretKey)
	} else {
		appLogger.Warn("Stripe is not configured; cancellations with refunds will fail")
	}

	// Repositories
	db := mongo.Database
	userRepo := mongodb.NewUserRepository(db)
	tourRepo := mongodb.NewTourRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)
	legacyRepo := mongodb.NewLegacyBookingRepository(db)
	hotelBookingRepo := mongodb.NewHotelBookingRepository(db)
	vehicleBookingRepo := mongodb.NewVehicleBookingRepository(db)
	driverRepo := mongodb.NewDriverRepository(db)
	vehicleRepo := mongodb.NewVehicleRepository(db)
	hotelRepo := mongodb.NewHotelRepository(db)
	activityRepo := mongodb.NewStaffActivityRepository(db)

	// Services
	resolver := permissions.NewTableResolver(nil)
	authService := services.NewAuthService(userRepo, blacklist, resolver, services.AuthConfig{
		JWTSecret: cfg.Security.JWTSecret,
		TokenTTL:  cfg.Security.JWTAccessTokenTTL,
	}, appLogger)
	queryService := services.NewBookingQueryService(userRepo, tourRepo, bookingRepo, legacyRepo, hotelBookingRepo, vehicleBookingRepo,
		services.BookingQueryConfig{
			PaginationMode: cfg.Bookings.PaginationMode,
			IncludeLegacy:  cfg.Bookings.IncludeLegacy,
		}, appLogger)
	bookingService := services.NewBookingService(bookingRepo, userRepo, tourRepo, refunds, cfg.Payment.Currency, appLogger)
	reportService := services.NewReportService(queryService, reportStore, services.ReportConfig{
		RowLimit: cfg.Bookings.ExportLimit,
		URLTTL:   cfg.Bookings.ReportURLTTL,
	}, appLogger)
	approvalService := services.NewApprovalService(userRepo, driverRepo, mongo, notifier, appLogger)
	dashboardService := services.NewDashboardService(userRepo, bookingRepo, hotelBookingRepo, vehicleBookingRepo, appLogger)
	guideService := services.NewGuideService(userRepo, bookingRepo, appLogger)
	vehicleService := services.NewVehicleService(vehicleRepo, vehicleBookingRepo, appLogger)
	hotelService := services.NewHotelService(hotelRepo, hotelBookingRepo, appLogger)

	handlers := routes.StaffHandlers{
		Auth: staff.NewAuthHandler(authService, staff.CookieConfig{
			Secure: cfg.Security.CookieSecure,
			Domain: cfg.Security.CookieDomain,
		}),
		Dashboard: staff.NewDashboardHandler(dashboardService),
		Bookings:  staff.NewBookingHandler(queryService, bookingService, reportService),
		Approvals: staff.NewApprovalHandler(approvalService),
		Guides:    staff.NewGuideHandler(guideService),
		Vehicles:  staff.NewVehicleHandler(vehicleService),
		Hotels:    staff.NewHotelHandler(hotelService),
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		appLogger.WithError(err).Fatal("Invalid trusted proxies")
	}

	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer, "serendibgo_staff")
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(metrics.Middleware())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.ActivityLogger(activityRepo, appLogger))

	api := router.Group("/api")
	routes.SetupStaffRoutes(api, handlers, middleware.NewAuthMiddleware(authService, resolver, appLogger))

	router.GET("/health", func(c *gin.Context) {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := mongo.Ping(pingCtx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": cfg.App.Version})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Infof("Starting %s on %s", cfg.App.Name, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Server forced to shutdown")
	}
}
