package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/metzakaria/vendicore/internal/adapter/http/dto"
	"github.com/metzakaria/vendicore/internal/adapter/http/middleware"
	"github.com/metzakaria/vendicore/internal/domain"
	"github.com/metzakaria/vendicore/internal/infrastructure/auth"
)

// Authenticator defines the behavior needed by AuthHandler.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// AuthHandler handles the login endpoint.
type AuthHandler struct {
	userUC        Authenticator
	jwtManager    *auth.JWTManager
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userUC Authenticator, jwtManager *auth.JWTManager, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{
		userUC:        userUC,
		jwtManager:    jwtManager,
		tokenDuration: tokenDuration,
	}
}

// Login validates credentials and issues a JWT. The token is returned in
// the body for API clients and set as the session cookie for browser
// clients; the gate accepts either.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userUC.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// not-found collapses into bad credentials so login never
		// confirms which emails exist
		if mapDomainError(err) == http.StatusNotFound {
			err = domain.ErrBadCredentials
		}

		writeDomainError(w, err)

		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenDuration),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	})
}
