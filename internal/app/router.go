package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/elamirizidani/Accounting-backend/internal/companies"
	"github.com/elamirizidani/Accounting-backend/internal/customers"
	"github.com/elamirizidani/Accounting-backend/internal/invoices"
	"github.com/elamirizidani/Accounting-backend/internal/quotations"
	"github.com/elamirizidani/Accounting-backend/internal/services"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	CompaniesHandler       *companies.Handler
	CustomersHandler       *customers.Handler
	ServicesHandler        *services.Handler
	QuotationsHandler      *quotations.Handler
	InvoicesHandler        *invoices.Handler
	CustomerReportsHandler *invoices.ReportsHandler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/companies", params.CompaniesHandler.MountRoutes)
		r.Route("/customers", func(r chi.Router) {
			params.CustomersHandler.MountRoutes(r)
			params.CustomerReportsHandler.MountRoutes(r)
		})
		params.ServicesHandler.MountRoutes(r)
		r.Route("/quotations", params.QuotationsHandler.MountRoutes)
		r.Route("/invoices", params.InvoicesHandler.MountRoutes)
	})

	return r
}
