package item

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kumarvenka/ship-app/internal/modules/auth"
	"github.com/Kumarvenka/ship-app/internal/modules/user"
	"github.com/Kumarvenka/ship-app/internal/platform/web"
)

// Handler exposes item request HTTP endpoints.
type Handler struct {
	service Service
	gate    *auth.Gate
}

func NewHandler(service Service, gate *auth.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

type submitResponse struct {
	Message string       `json:"message"`
	Item    *ItemRequest `json:"item"`
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	crew := auth.RequireRoles(user.RoleCrew)
	admin := auth.RequireRoles(user.RoleAdmin)
	vendor := auth.RequireRoles(user.RoleVendor)
	adminOrCrew := auth.RequireRoles(user.RoleAdmin, user.RoleCrew)

	router.Route("/items", func(r chi.Router) {
		r.Use(h.gate.Authenticate)
		r.With(adminOrCrew).Post("/create", h.create)                           // POST /items/create
		r.With(crew).Post("/request", h.submit)                                 // POST /items/request
		r.With(adminOrCrew).Get("/admin/requests", h.listMine)                  // GET  /items/admin/requests
		r.With(crew).Get("/crew/my-requests", h.listMine)                       // GET  /items/crew/my-requests
		r.With(admin).Put("/{id}/status", h.setStatus)                          // PUT  /items/{id}/status
		r.With(vendor).Get("/vendor/assigned", h.listAssigned)                  // GET  /items/vendor/assigned
		r.With(vendor).Put("/{id}/accept", h.respond)                           // PUT  /items/{id}/accept
		r.With(adminOrCrew).Get("/vendors/by-port/{portName}", h.vendorsByPort) // GET  /items/vendors/by-port/{portName}
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, err)
		return
	}
	p, _ := auth.PrincipalFromContext(r.Context())
	it, err := h.service.Create(r.Context(), p, req)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, it)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, err)
		return
	}
	p, _ := auth.PrincipalFromContext(r.Context())
	it, err := h.service.CrewSubmit(r.Context(), p, req)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, submitResponse{Message: "Item request submitted successfully", Item: it})
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())
	items, err := h.service.ListForRequester(r.Context(), p)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, items)
}

func (h *Handler) listAssigned(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())
	items, err := h.service.ListForVendor(r.Context(), p)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, items)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request) {
	// A missing body or "accept" field is a rejection.
	var req RespondRequest
	if err := web.DecodeOptional(r, &req); err != nil {
		web.Error(w, r, err)
		return
	}
	p, _ := auth.PrincipalFromContext(r.Context())
	it, err := h.service.VendorRespond(r.Context(), p, chi.URLParam(r, "id"), req.Accept)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, it)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, err)
		return
	}
	p, _ := auth.PrincipalFromContext(r.Context())
	it, err := h.service.SetStatus(r.Context(), p, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, it)
}

func (h *Handler) vendorsByPort(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())
	vendors, err := h.service.ListVendorsForPort(r.Context(), p, chi.URLParam(r, "portName"))
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, vendors)
}
