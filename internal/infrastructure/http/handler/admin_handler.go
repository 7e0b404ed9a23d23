package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/response"
)

// AdminHandler serves the admin form and description generation
type AdminHandler struct {
	admin     *service.AdminService
	describer *service.DescriptionService
	logger    *slog.Logger
}

func NewAdminHandler(admin *service.AdminService, describer *service.DescriptionService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		admin:     admin,
		describer: describer,
		logger:    logger,
	}
}

// GenerateDescription handles POST /descriptions. It always answers 200
// unless the request itself is malformed.
func (h *AdminHandler) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	var req dto.DescriptionRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	text := h.describer.Generate(r.Context(), req.Name, category, req.Price)
	response.JSON(w, http.StatusOK, dto.DescriptionResponse{Description: text})
}

// GetDraft handles GET /admin/draft
func (h *AdminHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.admin.Draft())
}

// UpdateDraft handles PUT /admin/draft
func (h *AdminHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req dto.DraftRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	draft, err := h.admin.UpdateDraft(r.Context(), &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, draft)
}

// ResetDraft handles DELETE /admin/draft
func (h *AdminHandler) ResetDraft(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.admin.Reset(r.Context()))
}

// EditProduct handles POST /admin/draft/edit/{id}
func (h *AdminHandler) EditProduct(w http.ResponseWriter, r *http.Request) {
	draft, err := h.admin.Edit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, draft)
}

// DescribeDraft handles POST /admin/draft/description
func (h *AdminHandler) DescribeDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.admin.GenerateDescription(r.Context())
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, draft)
}

// SubmitDraft handles POST /admin/draft/submit
func (h *AdminHandler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	product, err := h.admin.Submit(r.Context())
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, product)
}
