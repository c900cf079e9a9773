// Package user implements the user store: persistence through a
// repository, credential hashing through an injected PasswordHasher, and the
// rule that expected conflicts are reported as values rather than errors.
package user

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/marcos-nsantos/user-management-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/user-management-backend/internal/domain"
	"github.com/marcos-nsantos/user-management-backend/internal/domain/entity"
)

//go:generate mockgen -source=service.go -destination=../../mocks/hasher_mocks.go -package=mocks

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type Service struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher

	dummyOnce sync.Once
	dummyHash string
}

func NewService(userRepo repository.UserRepository, hasher PasswordHasher) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

type CreateInput struct {
	Name     string
	Email    string
	Password string
}

// Create stores a new user and returns its id. created is false, with a nil
// error, when the email is already registered.
func (s *Service) Create(ctx context.Context, input CreateInput) (id int64, created bool, err error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return 0, false, fmt.Errorf("hashing password: %w", err)
	}

	u := entity.NewUser(input.Name, input.Email, hash)
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("creating user: %w", err)
	}

	return u.ID, true, nil
}

// GetByID returns nil, nil when no user has the id.
func (s *Service) GetByID(ctx context.Context, id int64) (*entity.PublicUser, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	public := u.Public()
	return &public, nil
}

func (s *Service) List(ctx context.Context) ([]entity.PublicUser, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return publicUsers(users), nil
}

type UpdateInput struct {
	Name  *string
	Email *string
}

// Update reports false when nothing was supplied, the id does not exist or
// the new email belongs to another user.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (bool, error) {
	if input.Name == nil && input.Email == nil {
		return false, nil
	}

	if err := s.userRepo.Update(ctx, id, input.Name, input.Email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUserAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("updating user: %w", err)
	}

	return true, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("deleting user: %w", err)
	}
	return true, nil
}

func (s *Service) SearchByName(ctx context.Context, fragment string) ([]entity.PublicUser, error) {
	users, err := s.userRepo.SearchByName(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}
	return publicUsers(users), nil
}

// Authenticate returns nil, nil for an unknown email and for a wrong
// password alike. An unknown email still pays for one hash comparison.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.Identity, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(s.dummy(), password)
			return nil, nil
		}
		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, nil
	}

	identity := u.Identity()
	return &identity, nil
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		// A failed hash leaves dummyHash empty, which Verify rejects quickly.
		s.dummyHash, _ = s.hasher.Hash("dummy-password-for-timing")
	})
	return s.dummyHash
}

func publicUsers(users []entity.User) []entity.PublicUser {
	out := make([]entity.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}
