// Package database provides the user store: a key-value abstraction over
// user records keyed by email, backed either by DynamoDB or by an
// in-process map when no AWS credentials are configured.
package database

import (
	"context"
	"errors"

	"github.com/medtrack/medtrack/config"
	"github.com/medtrack/medtrack/database/model"
	"github.com/medtrack/medtrack/logger"
)

var (
	// ErrUserExists means the email is already taken. The original record
	// is left untouched.
	ErrUserExists = errors.New("user already exists")
	// ErrUnavailable means the backing store could not be reached. The
	// wrapped cause is for the server log only, never for the response.
	ErrUnavailable = errors.New("user store unavailable")
)

// UserStore is the capability interface both backends implement. Callers
// treat the backends as behaviorally identical; only the remote one
// survives a process restart.
type UserStore interface {
	// GetByEmail returns the user for the email, or (nil, nil) when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Put inserts a new user. Fails with ErrUserExists on a duplicate
	// email and ErrUnavailable when the backend cannot be reached.
	Put(ctx context.Context, user *model.User) error
	// Ping reports backend reachability.
	Ping(ctx context.Context) error
}

// New selects the backend from the environment: DynamoDB when AWS
// credentials are present, otherwise the in-memory fallback. The fallback
// is a documented degraded mode for local development, not an error.
func New(ctx context.Context) (UserStore, error) {
	if !config.HasAWSCredentials() {
		logger.Warning("AWS credentials not found, using in-memory user store; records will not survive a restart")
		return NewMemoryStore(), nil
	}

	store, err := NewDynamoStore(ctx, config.GetAWSRegion(), config.GetUsersTableName())
	if err != nil {
		return nil, err
	}
	logger.Infof("using DynamoDB user store, table %s in %s", config.GetUsersTableName(), config.GetAWSRegion())
	return store, nil
}
