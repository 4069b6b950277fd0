package invoices

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Convert)
	r.Get("/summary", h.Summary)
	r.Get("/summary/monthly", h.MonthlySummary)
	r.Get("/summary/month-over-month", h.MonthOverMonth)
	r.Get("/{id}", h.Show)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.Delete)
}
