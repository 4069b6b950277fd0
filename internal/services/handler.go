package services

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/elamirizidani/Accounting-backend/internal/platform/httpx"
)

type Handler struct {
	logger   *slog.Logger
	catalog  *Catalog
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, catalog *Catalog) *Handler {
	return &Handler{
		logger:   logger,
		catalog:  catalog,
		validate: validator.New(),
	}
}

func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.ListServices(r.Context())
	if err != nil {
		h.logger.Error("list services failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, services)
}

func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	service, err := h.catalog.CreateService(r.Context(), req)
	if err != nil {
		h.logger.Error("create service failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, service)
}

func (h *Handler) ListServiceCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.catalog.ListServiceCodes(r.Context())
	if err != nil {
		h.logger.Error("list service codes failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, codes)
}

func (h *Handler) CreateServiceCode(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	code, err := h.catalog.CreateServiceCode(r.Context(), req)
	if err != nil {
		h.logger.Error("create service code failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, code)
}
