// Package auth implements learner account registration and password login.
// Passwords are stored as bcrypt hashes; sessions are stateless JWT access
// tokens.
package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/saifdine/mutaallim-backend/internal/config"
	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// jwtManager defines the JWT token management interface needed by auth service.
type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	ValidateAccessToken(token string) (uuid.UUID, error)
}

// Service implements auth operations.
type Service struct {
	log   *slog.Logger
	cfg   config.AuthConfig
	users userRepo
	jwt   jwtManager
}

// NewService creates a new auth service instance.
func NewService(log *slog.Logger, cfg config.AuthConfig, users userRepo, jwt jwtManager) *Service {
	return &Service{
		log:   log.With("service", "auth"),
		cfg:   cfg,
		users: users,
		jwt:   jwt,
	}
}
