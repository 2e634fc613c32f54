// Package account implements the user-access flows: registration, credential
// login issuing a bearer token, and authenticated self-service profile
// read/update. Token verification is the HTTP boundary's job; operations here
// receive an already-verified email claim.
package account

import (
	"context"

	"github.com/geocoder89/accounthub/internal/auth"
	"github.com/geocoder89/accounthub/internal/domain/user"
	"github.com/geocoder89/accounthub/internal/security"
)

// Store is the narrow persistence capability the service needs.
type Store interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, u user.User) (user.User, error)
	Update(ctx context.Context, u user.User) error
	List(ctx context.Context) ([]user.User, error)
}

// TokenIssuer signs identity claims into a bearer token.
type TokenIssuer interface {
	GenerateToken(userID int64, email, name string) (string, error)
}

type Service struct {
	store  Store
	tokens TokenIssuer
}

func NewService(store Store, tokens TokenIssuer) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
	}
}

var _ TokenIssuer = (*auth.Manager)(nil)

type RegisterInput struct {
	Email    string
	Secret   security.Secret
	Name     string
	LastName string
	Username string
}

// Register persists a new account. The plaintext secret is replaced by its
// bcrypt digest before anything touches the store.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	if in.Email == "" || in.Secret == "" {
		return ErrInvalidInput
	}

	_, err := s.store.GetByEmail(ctx, in.Email)

	if err == nil {
		return user.ErrEmailTaken
	}

	if err != user.ErrNotFound {
		return err
	}

	hash, err := security.HashSecret(in.Secret)

	if err != nil {
		return err
	}

	_, err = s.store.Create(ctx, user.User{
		Email:        in.Email,
		Username:     in.Username,
		Name:         in.Name,
		LastName:     in.LastName,
		PasswordHash: hash,
	})

	return err
}

// Authenticate verifies the submitted credentials and returns a signed bearer
// token. An unknown email is reported as user.ErrNotFound rather than folded
// into ErrInvalidCredentials so the client can steer to registration.
func (s *Service) Authenticate(ctx context.Context, email string, secret security.Secret) (string, error) {
	if email == "" || secret == "" {
		return "", ErrInvalidInput
	}

	u, err := s.store.GetByEmail(ctx, email)

	if err != nil {
		return "", err
	}

	if err := u.PasswordHash.Verify(secret); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.GenerateToken(u.ID, u.Email, u.Name)
}

// Profile returns the read-only projection for the identity the boundary has
// already verified. The password hash never crosses this boundary.
func (s *Service) Profile(ctx context.Context, email string) (user.Profile, error) {
	if email == "" {
		return user.Profile{}, ErrUnauthorized
	}

	u, err := s.store.GetByEmail(ctx, email)

	if err != nil {
		return user.Profile{}, err
	}

	return u.Profile(), nil
}

// UpdateProfile applies a partial update to the caller's own record. Fields
// absent from the patch keep their stored values.
func (s *Service) UpdateProfile(ctx context.Context, email string, patch user.ProfilePatch) error {
	if email == "" {
		return ErrUnauthorized
	}

	u, err := s.store.GetByEmail(ctx, email)

	if err != nil {
		return err
	}

	patch.Apply(&u)

	return s.store.Update(ctx, u)
}

func (s *Service) ListAll(ctx context.Context) ([]user.User, error) {
	return s.store.List(ctx)
}
