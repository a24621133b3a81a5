package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/saifdine/mutaallim-backend/internal/domain"
)

// ValidateToken checks an access token and resolves its owner.
// Returns ErrUnauthorized for an invalid token or a deleted account.
func (s *Service) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.ValidateToken get user: %w", err)
	}

	return user, nil
}
