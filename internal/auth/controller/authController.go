package controller

import (
	"encoding/json"
	"net/http"

	"github.com/varadpoddar/blog-services/internal/auth/dto"
	"github.com/varadpoddar/blog-services/internal/auth/service"
	customerrors "github.com/varadpoddar/blog-services/internal/customErrors"
	"github.com/varadpoddar/blog-services/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) error {
	var req dto.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return customerrors.ErrInvalidJSON
	}

	res, err := c.authService.Signup(r.Context(), req)
	if err != nil {
		return err
	}

	return c.respond(w, http.StatusCreated, res)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) error {
	var req dto.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return customerrors.ErrInvalidJSON
	}

	res, err := c.authService.Login(r.Context(), req)
	if err != nil {
		return err
	}

	return c.respond(w, http.StatusOK, res)
}

// Me must be mounted behind middleware.RequireBearer.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) error {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return customerrors.ErrUnauthorized
	}

	user, err := c.authService.Me(r.Context(), claims)
	if err != nil {
		return err
	}

	return c.respond(w, http.StatusOK, user)
}

func (c *AuthController) HealthCheck(w http.ResponseWriter, r *http.Request) error {
	res, err := c.authService.HealthCheck(r.Context())
	if err != nil {
		return err
	}

	return c.respond(w, http.StatusOK, res)
}

func (c *AuthController) respond(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}
