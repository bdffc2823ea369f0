// AngelaMos | 2026
// handler.go

package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/risingherb/herb-api/internal/core"
)

const importFormField = "file"

type Handler struct {
	service       *Service
	adminWhatsApp string
	maxUpload     int64
}

func NewHandler(service *Service, adminWhatsApp string, maxUpload int64) *Handler {
	return &Handler{
		service:       service,
		adminWhatsApp: adminWhatsApp,
		maxUpload:     maxUpload,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/herbs", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/categories", h.Categories)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)

			r.Post("/", h.Create)
			r.Post("/import", h.Import)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := ListParams{
		Category: q.Get("category"),
		Query:    q.Get("q"),
		Sort:     q.Get("sort"),
	}

	items, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToItemResponseList(items, h.adminWhatsApp))
}

func (h *Handler) Categories(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, Categories)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToItemResponse(item, h.adminWhatsApp))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, ToItemResponse(item, h.adminWhatsApp))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToItemResponse(item, h.adminWhatsApp))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "Deleted"})
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		core.BadRequest(w, "multipart form with a file field is required")
		return
	}

	file, _, err := r.FormFile(importFormField)
	if err != nil {
		core.BadRequest(w, "file is required")
		return
	}
	defer file.Close() //nolint:errcheck // request-scoped upload

	result, err := h.service.Import(r.Context(), file)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, ErrInvalidID):
		core.BadRequest(w, "invalid id")
	case errors.Is(err, ErrInvalidSheet):
		core.BadRequest(w, err.Error())
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "herb")
	default:
		core.InternalServerError(w, err)
	}
}
