package dto

import (
	"strings"

	"github.com/varadpoddar/blog-services/internal/models"
	"github.com/varadpoddar/blog-services/internal/validation"
)

type AuthRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Normalize trims both fields. The password is trimmed as well so that
// signup and login always compare the same value.
func (a *AuthRequest) Normalize() {
	a.Username = strings.TrimSpace(a.Username)
	a.Password = strings.TrimSpace(a.Password)
}

func (a *AuthRequest) Validate() error {
	a.Normalize()
	return validation.Struct(a)
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
