package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopmarket/app/echo-server/router"
	"shopmarket/business/category"
	"shopmarket/business/notification"
	"shopmarket/business/orders"
	"shopmarket/business/product"
	"shopmarket/business/reminder"
	"shopmarket/business/stats"
	userService "shopmarket/business/user"
	"shopmarket/internal/middleware"
	notificationRepo "shopmarket/internal/repository/notification"
	psqlRepo "shopmarket/internal/repository/postgres"
	redisRepo "shopmarket/internal/repository/redis"
	"shopmarket/internal/rest"
	"shopmarket/pkg/config"
	"shopmarket/pkg/database"
	redisdb "shopmarket/pkg/database/redis"
	"shopmarket/pkg/logger"
	"shopmarket/pkg/metrics"
	"shopmarket/pkg/scheduler"
	"shopmarket/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting ShopMarket", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}

	// Init notification from mailjet
	mailjetEmail := notificationRepo.NewMailjetRepository(
		notificationRepo.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	productsRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	sessionRepo := redisRepo.NewTokenRepository(redisClient)

	// Order-created events flow through the dispatcher off the request path.
	dispatcher := notification.NewDispatcher(mailjetEmail)
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	go dispatcher.Run(dispatcherCtx)

	// Init service
	userSvc := userService.NewUserService(userRepo, validate, mailjetEmail, sessionRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	categorySvc := category.NewCategoryService(categoryRepo)
	productSvc := product.NewProductService(productsRepo, categoryRepo, cfg.Shop.PageSize)
	ordersSvc := orders.NewOrdersService(ordersRepo, productsRepo, userRepo, dispatcher, cfg.Shop.SellerRole, cfg.Shop.PaymentDueDays)
	statsSvc := stats.NewStatsService(ordersRepo, cfg.Shop.StatsDefaultLimit, cfg.Shop.StatsMaxLimit)
	reminderSvc := reminder.NewReminderService(ordersRepo, mailjetEmail)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	categoryHandler := rest.NewCategoryHandler(categorySvc)
	productHandler := rest.NewProductHandler(productSvc)
	ordersHandler := rest.NewOrdersHandler(ordersSvc)
	statsHandler := rest.NewStatsHandler(statsSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(sessionRepo)
	sellerOnly := middleware.SellerOnly()
	selfOrSeller := middleware.SelfOrSeller()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, selfOrSeller, sellerOnly)
	router.SetupCategoryRoutes(api, categoryHandler, authRequired, sellerOnly)
	router.SetupProductRoutes(api, productHandler, authRequired, sellerOnly)
	router.SetOrdersRoutes(api, ordersHandler, authRequired)
	router.SetStatsRoutes(api, statsHandler, authRequired, sellerOnly)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Daily payment reminders
	sched := scheduler.New()
	if err := sched.AddReminderJob(cfg.Shop.ReminderCronSpec, reminderSvc); err != nil {
		logger.Fatal("Failed to schedule payment reminders", "error", err)
	}
	sched.Start()

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	// The dispatcher outlives the server so orders placed during the drain
	// window still get their confirmation events delivered.
	stopDispatcher()

	logger.Info("Server stopped")
}
