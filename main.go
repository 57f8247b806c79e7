package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hyperinvoice/config"
	"hyperinvoice/database"
	invoiceRepo "hyperinvoice/database/repository/invoice"
	"hyperinvoice/handlers"
	"hyperinvoice/middleware"
	"hyperinvoice/routes"
	"hyperinvoice/services/bookingapi"
	"hyperinvoice/services/invoice"
	"hyperinvoice/services/pdf"
	"hyperinvoice/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	renderer, err := pdf.NewRenderer(logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load invoice templates: %v", err)
	}
	uploader, err := utils.Cloudinary(logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary uploader: %v", err)
	}
	gateway := bookingapi.NewClient(cfg.BookingAPIBaseURL, cfg.BookingAPITimeout, logger)

	invoiceService := &invoice.DefaultInvoiceService{
		Gateway:      gateway,
		Renderer:     renderer,
		Uploader:     uploader,
		Numbers:      utils.NewInvoiceNumberGenerator(),
		Observer:     invoice.NewZapObserver(logger),
		AmountPolicy: invoice.ParseAmountPolicy(cfg.AmountPolicy),
		IssuerName:   cfg.IssuerName,
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()

	if cfg.PersistInvoices {
		if err := database.InitDB(logger); err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		cacheClient := utils.GetCacheClient()
		repo := invoiceRepo.NewMongoInvoiceRepo(database.Database(), cacheClient, logger)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Sugar().Fatalf("main: failed to create invoice indexes: %v", err)
		}
		cancel()

		invoiceService.Repo = repo
		utils.StartHealthMonitor(monitorCtx, cacheClient, database.MongoClient)
	} else {
		logger.Info("Invoice persistence disabled; direct and lookup endpoints are off")
		utils.CheckHealth(monitorCtx, nil, nil)
	}

	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	handlerBundle := &handlers.HandlerBundle{
		GenerateInvoiceHandler: invoiceHandler.GenerateInvoiceHandler,
		HealthHandler:          handlers.HealthHandler,
	}
	if invoiceService.Repo != nil {
		handlerBundle.CreateDirectInvoiceHandler = invoiceHandler.CreateDirectInvoiceHandler
		handlerBundle.GetInvoiceHandler = invoiceHandler.GetInvoiceHandler
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if len(cfg.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logger.Sugar().Fatalf("main: invalid TRUSTED_PROXIES: %v", err)
		}
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	router.Use(middleware.RequestLogger(logger))

	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to close MongoDB client: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
