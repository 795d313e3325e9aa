package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/metzakaria/vendicore/internal/adapter/http/dto"
	"github.com/metzakaria/vendicore/internal/adapter/http/middleware"
	"github.com/metzakaria/vendicore/internal/domain"
	"github.com/metzakaria/vendicore/internal/usecase"
)

// UserService defines the behavior needed by UserHandler.
type UserService interface {
	CreateUser(ctx context.Context, authz domain.AuthContext, input usecase.CreateUserInput) (*domain.User, error)
	ListUsers(ctx context.Context, authz domain.AuthContext, limit, offset int) ([]*domain.User, error)
}

// UserHandler handles platform user HTTP requests.
type UserHandler struct {
	userUC UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUC UserService) *UserHandler {
	return &UserHandler{userUC: userUC}
}

// Create creates a platform user. The use case restricts this to
// superadmins.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	authz := middleware.AuthFromContext(r.Context())

	user, err := h.userUC.CreateUser(r.Context(), authz, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}

// List lists platform users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	authz := middleware.AuthFromContext(r.Context())

	users, err := h.userUC.ListUsers(
		r.Context(),
		authz,
		parseIntQuery(r, "limit", 20),
		parseIntQuery(r, "offset", 0),
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UsersFromDomain(users))
}
