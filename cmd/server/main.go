package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homeledger/internal/api"
	"homeledger/internal/auth"
	"homeledger/internal/config"
	"homeledger/internal/database"
	"homeledger/internal/market"
	"homeledger/internal/quotes"
	"homeledger/internal/repository"
	"homeledger/internal/scheduler"
	"homeledger/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	tokens, err := auth.NewTokenManager(
		cfg.Auth.SecretKey,
		time.Duration(cfg.Auth.AccessTokenMinutes)*time.Minute,
		time.Duration(cfg.Auth.RefreshTokenDays)*24*time.Hour,
	)
	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	// Create repositories
	householdRepo := repository.NewHouseholdRepository(db)
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	holdingRepo := repository.NewHoldingRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	valuationRepo := repository.NewValuationRepository(db)
	capitalEventRepo := repository.NewCapitalEventRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	leaseRepo := repository.NewLeaseRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	costRepo := repository.NewPropertyCostRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	authService := service.NewAuthService(userRepo, householdRepo, tokens)
	accountService := service.NewAccountService(accountRepo, holdingRepo)
	propertyService := service.NewPropertyService(db, propertyRepo, valuationRepo, capitalEventRepo)
	rentalService := service.NewRentalService(propertyRepo, unitRepo, tenantRepo, leaseRepo, paymentRepo)
	detailsService := service.NewPropertyDetailsService(propertyRepo, loanRepo, costRepo, expenseRepo)
	reportService := service.NewReportService(propertyRepo, reportRepo, loanRepo, costRepo, expenseRepo, capitalEventRepo)
	refreshService := service.NewRefreshService(db, householdRepo, holdingRepo, quotes.NewFinanceClient(), market.NewCalendar())

	// Background price refresh sweep
	sched, err := scheduler.New(refreshService, cfg.Refresh.CronSpec)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:          systemService,
		Auth:            authService,
		Accounts:        accountService,
		Properties:      propertyService,
		Rentals:         rentalService,
		PropertyDetails: detailsService,
		Reports:         reportService,
		Refresh:         refreshService,
	}, tokens, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
