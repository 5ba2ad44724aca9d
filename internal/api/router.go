package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"homeledger/internal/api/handlers"
	custommiddleware "homeledger/internal/api/middleware"
	"homeledger/internal/auth"
	"homeledger/internal/config"
	"homeledger/internal/service"
)

// Services bundles the service layer for router construction.
type Services struct {
	System          *service.SystemService
	Auth            *service.AuthService
	Accounts        *service.AccountService
	Properties      *service.PropertyService
	Rentals         *service.RentalService
	PropertyDetails *service.PropertyDetailsService
	Reports         *service.ReportService
	Refresh         *service.RefreshService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, tokens *auth.TokenManager, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	requireAuth := custommiddleware.NewAuth(tokens)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(svc.Auth)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.With(requireAuth).Get("/me", authHandler.Me)
		})

		accountHandler := handlers.NewAccountHandler(svc.Accounts)
		r.Route("/accounts", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", accountHandler.Accounts)
			r.Post("/", accountHandler.CreateAccount)

			r.Route("/{accountId}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDParam("accountId"))
				r.Get("/", accountHandler.Account)
				r.Put("/", accountHandler.UpdateAccount)
				r.Delete("/", accountHandler.DeleteAccount)
				r.Get("/holdings", accountHandler.Holdings)
				r.Post("/holdings", accountHandler.CreateHolding)
			})
		})

		r.Route("/holdings/{holdingId}", func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(custommiddleware.ValidateUUIDParam("holdingId"))
			r.Put("/", accountHandler.UpdateHolding)
			r.Delete("/", accountHandler.DeleteHolding)
		})

		r.Route("/investments", func(r chi.Router) {
			investmentHandler := handlers.NewInvestmentHandler(svc.Refresh)
			r.Get("/market-status", investmentHandler.MarketStatus)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/refresh", investmentHandler.Refresh)
				r.Get("/refresh-status", investmentHandler.RefreshStatus)
				r.Put("/refresh-settings", investmentHandler.UpdateRefreshSettings)
			})
		})

		propertyHandler := handlers.NewPropertyHandler(svc.Properties)
		rentalHandler := handlers.NewRentalHandler(svc.Rentals)
		detailsHandler := handlers.NewPropertyDetailsHandler(svc.PropertyDetails)
		r.Route("/properties", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", propertyHandler.Properties)
			r.Post("/", propertyHandler.CreateProperty)

			r.Route("/{propertyId}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDParam("propertyId"))
				r.Get("/", propertyHandler.Property)
				r.Put("/", propertyHandler.UpdateProperty)
				r.Delete("/", propertyHandler.DeleteProperty)

				r.Get("/valuations", propertyHandler.Valuations)
				r.Post("/valuations", propertyHandler.CreateValuation)

				r.Get("/capital-events", propertyHandler.CapitalEvents)
				r.Post("/capital-events", propertyHandler.CreateCapitalEvent)
				r.With(custommiddleware.ValidateUUIDParam("eventId")).
					Delete("/capital-events/{eventId}", propertyHandler.DeleteCapitalEvent)

				r.Get("/units", rentalHandler.Units)
				r.Post("/units", rentalHandler.CreateUnit)

				r.Get("/loans", detailsHandler.Loans)
				r.Post("/loans", detailsHandler.CreateLoan)

				r.Get("/costs", detailsHandler.Costs)
				r.Post("/costs", detailsHandler.CreateCost)
				r.Route("/costs/{costId}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDParam("costId"))
					r.Put("/", detailsHandler.UpdateCost)
					r.Delete("/", detailsHandler.DeleteCost)
				})

				r.Get("/expenses", detailsHandler.Expenses)
				r.Post("/expenses", detailsHandler.CreateExpense)
				r.Route("/expenses/{expenseId}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDParam("expenseId"))
					r.Put("/", detailsHandler.UpdateExpense)
					r.Delete("/", detailsHandler.DeleteExpense)
				})
			})
		})

		r.Route("/units/{unitId}", func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(custommiddleware.ValidateUUIDParam("unitId"))
			r.Put("/", rentalHandler.UpdateUnit)
			r.Delete("/", rentalHandler.DeleteUnit)
			r.Get("/leases", rentalHandler.Leases)
			r.Post("/leases", rentalHandler.CreateLease)
		})

		r.Route("/tenants", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", rentalHandler.Tenants)
			r.Post("/", rentalHandler.CreateTenant)

			r.Route("/{tenantId}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDParam("tenantId"))
				r.Put("/", rentalHandler.UpdateTenant)
				r.Delete("/", rentalHandler.DeleteTenant)
			})
		})

		r.Route("/leases/{leaseId}", func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(custommiddleware.ValidateUUIDParam("leaseId"))
			r.Put("/", rentalHandler.UpdateLease)
			r.Delete("/", rentalHandler.DeleteLease)
			r.Get("/charges", rentalHandler.Charges)
			r.Post("/charges", rentalHandler.CreateCharge)
			r.Get("/payments", rentalHandler.Payments)
			r.Post("/payments", rentalHandler.CreatePayment)
			r.With(custommiddleware.ValidateUUIDParam("paymentId")).
				Delete("/payments/{paymentId}", rentalHandler.DeletePayment)
		})

		r.Route("/loans/{loanId}", func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(custommiddleware.ValidateUUIDParam("loanId"))
			r.Put("/", detailsHandler.UpdateLoan)
			r.Delete("/", detailsHandler.DeleteLoan)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(requireAuth)
			reportHandler := handlers.NewReportHandler(svc.Reports)
			r.With(custommiddleware.ValidateUUIDParam("propertyId")).
				Get("/property/{propertyId}", reportHandler.PropertyReport)
			r.Get("/portfolio", reportHandler.PortfolioReport)
		})
	})

	return r
}
