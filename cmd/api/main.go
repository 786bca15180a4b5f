package main

import (
	"go.uber.org/zap"

	"github.com/skbavi/supermarket-pos-api/internal/application/service"
	"github.com/skbavi/supermarket-pos-api/internal/config"
	"github.com/skbavi/supermarket-pos-api/internal/infrastructure/database"
	"github.com/skbavi/supermarket-pos-api/internal/infrastructure/repository"
	"github.com/skbavi/supermarket-pos-api/internal/presentation/http/handler"
	"github.com/skbavi/supermarket-pos-api/internal/presentation/http/routes"
	"github.com/skbavi/supermarket-pos-api/pkg/email"
	"github.com/skbavi/supermarket-pos-api/pkg/oauth"
	"github.com/skbavi/supermarket-pos-api/pkg/printer"
	"github.com/skbavi/supermarket-pos-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedDefaultData(db, logger); err != nil {
		logger.Warn("failed to seed default data", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize email service when SMTP is configured
	var emailService *email.Service
	if cfg.Email.SMTPHost != "" {
		emailService = email.NewService(email.Config{
			SMTPHost:     cfg.Email.SMTPHost,
			SMTPPort:     cfg.Email.SMTPPort,
			SMTPUsername: cfg.Email.SMTPUsername,
			SMTPPassword: cfg.Email.SMTPPassword,
			FromName:     cfg.Email.FromName,
			FromEmail:    cfg.Email.FromEmail,
			FrontendURL:  cfg.Email.FrontendURL,
		})
	}

	// Initialize Google OAuth when configured
	var googleService *oauth.GoogleService
	if cfg.OAuth.GoogleClientID != "" {
		googleService = oauth.NewGoogleService(oauth.GoogleConfig{
			ClientID:           cfg.OAuth.GoogleClientID,
			ClientSecret:       cfg.OAuth.GoogleClientSecret,
			RedirectURL:        cfg.OAuth.GoogleRedirectURL,
			FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
			FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
		})
	}

	// Initialize thermal printer
	receiptPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		logger.Warn("printer configuration invalid, printing disabled", zap.Error(err))
		receiptPrinter = printer.NewNullPrinter()
	}
	defer receiptPrinter.Close()

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService, googleService, logger)
	productService := service.NewProductService(productRepo, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	supplierService := service.NewSupplierService(supplierRepo, logger)
	userService := service.NewUserService(userRepo, logger)
	catalogService := service.NewCatalogService(productRepo, userRepo)
	transactionService := service.NewTransactionService(transactionRepo, catalogService, logger)
	receiptService := service.NewReceiptService(transactionService, catalogService, cfg.Receipt, logger)
	printerService := service.NewPrinterService(receiptService, receiptPrinter, cfg.Printer, logger)
	analyticsService := service.NewAnalyticsService(productRepo, userRepo, transactionRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Product:     handler.NewProductHandler(productService),
		Category:    handler.NewCategoryHandler(categoryService),
		Supplier:    handler.NewSupplierHandler(supplierService),
		User:        handler.NewUserHandler(userService),
		Transaction: handler.NewTransactionHandler(transactionService, receiptService, printerService),
		Analytics:   handler.NewAnalyticsHandler(analyticsService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
	})

	logger.Info("server starting",
		zap.String("port", cfg.App.Port),
		zap.String("env", cfg.App.Env))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
