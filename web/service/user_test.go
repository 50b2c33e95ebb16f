package service

import (
	"context"
	"os"
	"testing"

	"github.com/medtrack/medtrack/database"
	"github.com/medtrack/medtrack/database/model"
	"github.com/medtrack/medtrack/logger"
	"github.com/medtrack/medtrack/util/crypto"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}

func TestRegisterCreatesHashedRecord(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewUserService(store)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "a@x.com", "secret123", model.RolePatient)
	require.NoError(t, err)

	assert.NotEmpty(t, user.UserId)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, crypto.CheckPasswordHash(user.PasswordHash, "secret123"))
	assert.True(t, user.IsActive)
	assert.False(t, user.CreatedAt.IsZero())

	stored, err := store.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, user.UserId, stored.UserId)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewUserService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@x.com", "secret123", model.RolePatient)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Bob", "a@x.com", "hunter22", model.RoleDoctor)
	assert.ErrorIs(t, err, database.ErrUserExists)

	stored, err := store.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.Name)
	assert.Equal(t, model.RolePatient, stored.Role)
}

func TestAuthenticate(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewUserService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@x.com", "secret123", model.RolePatient)
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "a@x.com", "secret123", model.RolePatient)
	require.NoError(t, err)
	assert.Equal(t, model.RolePatient, user.Role)

	_, err = svc.Authenticate(ctx, "a@x.com", "wrong", model.RolePatient)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@x.com", "secret123", model.RolePatient)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Valid credentials through the wrong entry point still fail.
	_, err = svc.Authenticate(ctx, "a@x.com", "secret123", model.RoleDoctor)
	assert.ErrorIs(t, err, ErrRoleMismatch)
}
