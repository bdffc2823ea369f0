// AngelaMos | 2026
// handler.go

package lead

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/risingherb/herb-api/internal/core"
	"github.com/risingherb/herb-api/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public chat endpoint. A token is optional;
// when valid it links the lead to the caller.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.With(optionalAuth).Post("/chat", h.Submit)
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/leads", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.List)
	})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	var identity *middleware.Identity
	if id, ok := middleware.GetIdentity(r.Context()); ok {
		identity = &id
	}

	resp, err := h.service.Submit(r.Context(), req, identity)
	if err != nil {
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:     core.QueryInt(r, "page", 1),
		PageSize: core.QueryInt(r, "page_size", 50),
	}
	params.Normalize()

	leads, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, ToLeadResponseList(leads), params.Page, params.PageSize, total)
}
