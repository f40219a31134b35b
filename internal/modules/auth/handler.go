package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Kumarvenka/ship-app/internal/apperror"
	"github.com/Kumarvenka/ship-app/internal/modules/user"
	"github.com/Kumarvenka/ship-app/internal/platform/web"
)

// Handler exposes the public signup and login endpoints.
type Handler struct {
	service  Service
	limiters []func(http.Handler) http.Handler
}

// NewHandler creates the auth handler. Optional middleware (rate limiting)
// wraps both endpoints.
func NewHandler(service Service, limiters ...func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, limiters: limiters}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/auth", func(r chi.Router) {
		r.Use(h.limiters...)
		r.Post("/signup", h.signup) // POST /auth/signup
		r.Post("/login", h.login)   // POST /auth/login
	})
}

type signupResponse struct {
	Message string     `json:"message"`
	User    *user.User `json:"user"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterInput
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, err)
		return
	}

	u, err := h.service.Register(r.Context(), req)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, signupResponse{Message: "User created successfully", User: u})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser is the principal summary returned with a credential.
type LoginUser struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Role     user.Role `json:"role"`
	PortName string    `json:"portName,omitempty"`
	ShipName string    `json:"shipName,omitempty"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      LoginUser `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, err)
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// An unknown email is reported as a bad request, not a 404.
		var nf *apperror.NotFoundError
		if errors.As(err, &nf) {
			web.Fail(w, http.StatusBadRequest, "user not found")
			return
		}
		web.Error(w, r, err)
		return
	}

	u := session.User
	web.Respond(w, http.StatusOK, loginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC(),
		User: LoginUser{
			ID:       u.ID,
			Name:     u.Name,
			Role:     u.Role,
			PortName: u.PortName,
			ShipName: u.ShipName,
		},
	})
}
