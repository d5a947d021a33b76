package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/repfit/repfit-server/internal/auth"
	"github.com/repfit/repfit-server/internal/domain"
	"github.com/repfit/repfit-server/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
}

func NewUserService(userRepo repository.UserRepository, hasher *auth.PasswordHasher) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

type UpdateUserInput struct {
	Email    *string
	Username *string
	FullName *string
	Password *string
}

// Update applies a partial profile update to the resolved user. An empty
// payload is rejected rather than treated as a no-op.
func (s *UserService) Update(ctx context.Context, user *domain.User, input UpdateUserInput) (*domain.User, error) {
	if input.Email == nil && input.Username == nil && input.FullName == nil && input.Password == nil {
		return nil, domain.NewValidationError("", "no fields to update")
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.userRepo.GetByEmail(ctx, *input.Email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *input.Email
	}

	if input.Username != nil && *input.Username != user.Username {
		if _, err := s.userRepo.GetByUsername(ctx, *input.Username); err == nil {
			return nil, domain.ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = *input.Username
	}

	if input.FullName != nil {
		user.FullName = input.FullName
	}

	if input.Password != nil {
		hashedPassword, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashedPassword
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes the account and, by cascade, every routine, exercise, daily
// log, workout session and completed set the user owns.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.DeleteCascade(ctx, userID)
}
