package cab

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kumarvenka/ship-app/internal/modules/auth"
	"github.com/Kumarvenka/ship-app/internal/modules/user"
	"github.com/Kumarvenka/ship-app/internal/platform/web"
)

// Handler exposes cab request HTTP endpoints.
type Handler struct {
	service Service
	gate    *auth.Gate
}

func NewHandler(service Service, gate *auth.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	crew := auth.RequireRoles(user.RoleCrew)
	driver := auth.RequireRoles(user.RoleDriver)

	router.Route("/cabs", func(r chi.Router) {
		r.Use(h.gate.Authenticate)
		r.With(crew).Post("/request", h.create)                // POST /cabs/request
		r.With(crew).Get("/crew", h.listMine)                  // GET  /cabs/crew
		r.With(crew).Get("/crew/my-requests", h.listMine)      // GET  /cabs/crew/my-requests (alias)
		r.With(driver).Get("/driver/assigned", h.listAssigned) // GET  /cabs/driver/assigned
		r.With(driver).Put("/{id}/accept", h.accept)           // PUT  /cabs/{id}/accept
		r.With(driver).Put("/{id}/decline", h.decline)         // PUT  /cabs/{id}/decline
		r.With(driver).Put("/{id}/confirm", h.confirm)         // PUT  /cabs/{id}/confirm
		r.With(auth.RequireRoles(user.RoleCrew, user.RoleAdmin)).
			Get("/drivers/by-port/{portName}", h.driversByPort) // GET /cabs/drivers/by-port/{portName}
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, err)
		return
	}
	p, _ := auth.PrincipalFromContext(r.Context())
	c, err := h.service.Create(r.Context(), p, req)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, c)
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())
	cabs, err := h.service.ListForRequester(r.Context(), p)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, cabs)
}

func (h *Handler) listAssigned(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())
	cabs, err := h.service.ListForDriver(r.Context(), p)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, cabs)
}

func (h *Handler) accept(w http.ResponseWriter, r *http.Request) {
	h.driverAction(w, r, h.service.Accept)
}

func (h *Handler) decline(w http.ResponseWriter, r *http.Request) {
	h.driverAction(w, r, h.service.Decline)
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	h.driverAction(w, r, h.service.Confirm)
}

func (h *Handler) driverAction(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, driver *user.User, id string) (*CabRequest, error),
) {
	p, _ := auth.PrincipalFromContext(r.Context())
	c, err := action(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, c)
}

func (h *Handler) driversByPort(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())
	drivers, err := h.service.ListDriversForPort(r.Context(), p, chi.URLParam(r, "portName"))
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, drivers)
}
