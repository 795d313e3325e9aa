package usecase

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/metzakaria/vendicore/internal/domain"
	"github.com/metzakaria/vendicore/internal/infrastructure/metrics"
)

// UserUseCase handles platform user management and credential checks.
type UserUseCase struct {
	userRepo UserRepository
	idGen    IDGenerator
	metrics  *metrics.Metrics
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository, idGen IDGenerator) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		idGen:    idGen,
	}
}

// WithMetrics attaches business metrics. Safe to skip; all recording is
// nil-guarded.
func (uc *UserUseCase) WithMetrics(m *metrics.Metrics) *UserUseCase {
	uc.metrics = m
	return uc
}

// CreateUserInput represents input for creating a user.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// CreateUser creates a new user with a bcrypt-hashed password. Only a
// superadmin may create users.
func (uc *UserUseCase) CreateUser(ctx context.Context, authz domain.AuthContext, input CreateUserInput) (*domain.User, error) {
	if !authz.Authenticated {
		return nil, domain.ErrUnauthorized
	}

	if !authz.Role.CanManageUsers() {
		return nil, domain.ErrForbidden
	}

	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	role := domain.ParseRole(input.Role)
	if !role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Email:          input.Email,
		Name:           input.Name,
		HashedPassword: string(hashed),
		Role:           role,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, domain.NewOperationError("user.create", err)
	}

	// Never hand the hash back to callers
	user.HashedPassword = ""

	return user, nil
}

// Authenticate verifies credentials and returns the matching user.
func (uc *UserUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.recordAuthAttempt("failure")
		return nil, domain.ErrBadCredentials
	}

	if !user.Active {
		uc.recordAuthAttempt("deactivated")
		return nil, domain.ErrUserDeactivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		uc.recordAuthAttempt("failure")
		return nil, domain.ErrBadCredentials
	}

	user.HashedPassword = ""

	uc.recordAuthAttempt("success")

	return user, nil
}

func (uc *UserUseCase) recordAuthAttempt(outcome string) {
	if uc.metrics != nil {
		uc.metrics.AuthAttempts.WithLabelValues(outcome).Inc()
	}
}

// ListUsers lists users with pagination.
func (uc *UserUseCase) ListUsers(ctx context.Context, authz domain.AuthContext, limit, offset int) ([]*domain.User, error) {
	if !authz.Authenticated {
		return nil, domain.ErrUnauthorized
	}

	if !authz.Role.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	limit, offset = domain.ValidatePagination(limit, offset)

	users, err := uc.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		u.HashedPassword = ""
	}

	return users, nil
}
