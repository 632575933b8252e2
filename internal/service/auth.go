package service

import (
	"github.com/clerk/clerk-sdk-go/v2"

	"github.com/deppfellow/workout-api/internal/server"
)

// AuthService configures Clerk for the auth middleware.
type AuthService struct {
	enabled bool
}

// NewAuthService sets the Clerk secret key when authentication is enabled.
func NewAuthService(s *server.Server) *AuthService {
	if s.Config.Auth.Enabled {
		clerk.SetKey(s.Config.Auth.SecretKey)
	}
	return &AuthService{enabled: s.Config.Auth.Enabled}
}

// Enabled reports whether mutating routes require a Clerk session.
func (a *AuthService) Enabled() bool {
	return a.enabled
}
