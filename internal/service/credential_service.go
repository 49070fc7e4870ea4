package service

import (
	"context"
	"errors"

	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/repository"
)

// CredentialService owns user rows: account creation, password hashing and
// verification, and identity lookup.
type CredentialService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewCredentialService builds the service.
func NewCredentialService(users repository.UserRepository, bcryptCost int) *CredentialService {
	return &CredentialService{users: users, bcryptCost: bcryptCost}
}

// Create registers a new account. Fails with ErrUserExists when the email is
// already taken.
func (s *CredentialService) Create(ctx context.Context, name, email, image, password string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Image:        image,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyPassword reports whether candidate matches the stored hash.
func (s *CredentialService) VerifyPassword(user *domain.User, candidate string) bool {
	return auth.ComparePassword(user.PasswordHash, candidate) == nil
}

// FindByEmail looks an account up by email.
func (s *CredentialService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// FindByID looks an account up by id.
func (s *CredentialService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdatePassword re-hashes and overwrites the stored password.
func (s *CredentialService) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// MarkEmailVerified stamps the account's verification timestamp.
func (s *CredentialService) MarkEmailVerified(ctx context.Context, userID string) error {
	return s.users.MarkEmailVerified(ctx, userID)
}

// List returns all accounts.
func (s *CredentialService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// UpdateProfile changes name and image.
func (s *CredentialService) UpdateProfile(ctx context.Context, userID, name, image string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Name = name
	user.Image = image
	return s.users.Update(ctx, user)
}

// ChangePassword verifies the current password before updating to a new hash.
func (s *CredentialService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.VerifyPassword(user, oldPassword) {
		return domain.ErrInvalidCredentials
	}
	return s.UpdatePassword(ctx, userID, newPassword)
}

// Delete removes the account.
func (s *CredentialService) Delete(ctx context.Context, userID string) error {
	return s.users.Delete(ctx, userID)
}
