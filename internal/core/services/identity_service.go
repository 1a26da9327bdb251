package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/ports"
)

const minPasswordLength = 8

// identityService est le collaborateur identité : surface mince, hors du
// chemin critique des ledgers.
type identityService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenProvider
}

func NewIdentityService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenProvider) ports.IdentityService {
	return &identityService{users: users, hasher: hasher, tokens: tokens}
}

func (s *identityService) Register(ctx context.Context, cmd ports.RegisterCmd) (*ports.AuthResponse, error) {
	if len(cmd.Password) < minPasswordLength {
		return nil, domain.ErrInvalidPassword
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := domain.NewUser(cmd.Email, hash, cmd.Name)
	if err != nil {
		return nil, err
	}

	// La contrainte UNIQUE sur email est la garde ultime ; le repo traduit
	// la violation en ErrEmailAlreadyExists.
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &ports.AuthResponse{User: user, AccessToken: token, ExpiresIn: 24 * time.Hour}, nil
}

func (s *identityService) Login(ctx context.Context, email, password string) (*ports.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Erreur générique : ne pas révéler si l'email existe.
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &ports.AuthResponse{User: user, AccessToken: token, ExpiresIn: 24 * time.Hour}, nil
}

func (s *identityService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}
	return s.users.GetByID(ctx, userID)
}

func (s *identityService) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Apply(patch)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
