// Package auth registers users, checks their credentials and issues the
// bearer tokens the API guard verifies.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/sidelines/sidelines/internal/apperr"
	"github.com/sidelines/sidelines/internal/models"
	"github.com/sidelines/sidelines/internal/repo"
	"github.com/sidelines/sidelines/internal/validation"
)

// MinCost is the lowest bcrypt cost Register will hash with.
const MinCost = 10

// UserStore is the credential store the service reads and writes.
// Lookups return repo.ErrNotFound and inserts repo.ErrDuplicate.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (int, error)
}

// RegisterInput is a signup request. There is no admin flag: accounts are
// elevated separately by an existing admin.
type RegisterInput struct {
	Username       string  `json:"username" validate:"required,max=100"`
	Email          string  `json:"email" validate:"required,email,max=255"`
	Password       string  `json:"password" validate:"required,max=72"`
	ProfilePicture *string `json:"profile_picture,omitempty" validate:"omitempty,max=255"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is returned to the client on a successful login.
type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Service handles signup and login.
type Service struct {
	users  UserStore
	tokens *TokenCodec
	cost   int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewService wires the service. cost is raised to MinCost when lower.
func NewService(users UserStore, tokens *TokenCodec, cost int) *Service {
	if cost < MinCost {
		cost = MinCost
	}
	return &Service{users: users, tokens: tokens, cost: cost}
}

// Tokens returns the codec the service signs with.
func (s *Service) Tokens() *TokenCodec {
	return s.tokens
}

// Register creates a user and returns its id. The email lookup is only a fast
// path; the store's unique index decides races between concurrent signups.
func (s *Service) Register(ctx context.Context, in RegisterInput) (int, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return 0, err
	}

	_, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return 0, apperr.Conflict("user already exists", nil)
	case !errors.Is(err, repo.ErrNotFound):
		return 0, apperr.Store("signup failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return 0, apperr.Validation("validation failed", map[string]string{"password": "is too long"})
	}
	if err != nil {
		return 0, apperr.Store("signup failed", err)
	}

	id, err := s.users.Create(ctx, &models.User{
		Username:       in.Username,
		Email:          in.Email,
		PasswordHash:   string(hash),
		ProfilePicture: in.ProfilePicture,
		IsAdmin:        false,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return 0, apperr.Conflict("user already exists", err)
		}
		return 0, apperr.Store("signup failed", err)
	}
	return id, nil
}

// Login checks the credentials and issues a token. Unknown email and wrong
// password fail identically, including the bcrypt work done.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	in := loginInput{Email: strings.TrimSpace(email), Password: password}
	if err := validation.Struct(in); err != nil {
		return nil, apperr.Validation("email and password are required", err.(*apperr.Error).Fields)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return nil, apperr.InvalidCredentials()
		}
		return nil, apperr.Store("login failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.InvalidCredentials()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Store("login failed", err)
	}

	return &LoginResult{Token: token, User: user.Public()}, nil
}

func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("sidelines-dummy-password"), s.cost)
	})
	return s.dummyHash
}
