package services

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.ListServices)
		r.Post("/", h.CreateService)
	})
	r.Route("/service-codes", func(r chi.Router) {
		r.Get("/", h.ListServiceCodes)
		r.Post("/", h.CreateServiceCode)
	})
}
