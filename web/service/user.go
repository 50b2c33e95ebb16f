package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medtrack/medtrack/database"
	"github.com/medtrack/medtrack/database/model"
	"github.com/medtrack/medtrack/logger"
	"github.com/medtrack/medtrack/util/crypto"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a caller cannot probe which addresses are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRoleMismatch means the credentials were valid but the account's
	// role does not match the login path used.
	ErrRoleMismatch = errors.New("role mismatch")
)

// UserService implements account registration and authentication on top of
// the user store.
type UserService struct {
	store database.UserStore
}

func NewUserService(store database.UserStore) *UserService {
	return &UserService{store: store}
}

// Register creates one account. The email must be unused; the store's
// conditional insert keeps that true under concurrent signups. The password
// is stored only as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		UserId:       uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
		IsActive:     true,
	}

	if err := s.store.Put(ctx, user); err != nil {
		return nil, err
	}

	logger.Infof("registered %s account %s", role, user.UserId)
	return user, nil
}

// Authenticate verifies the credentials and the role of the login path.
// The lookup result and the password check collapse into one uniform
// failure; only a valid credential pair can surface the role mismatch.
func (s *UserService) Authenticate(ctx context.Context, email, password string, role model.Role) (*model.User, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if user.Role != role {
		return nil, ErrRoleMismatch
	}
	return user, nil
}
