package database

import (
	"context"
	"sync"

	"github.com/medtrack/medtrack/database/model"
)

// MemoryStore keeps user records in process memory. It exists so the panel
// still runs without AWS credentials; everything is lost on restart.
// Concurrent request handlers may race on signup, so all access goes
// through the mutex.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]model.User)}
}

func (s *MemoryStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// Put checks and inserts under one lock, so two concurrent signups with the
// same email cannot both succeed.
func (s *MemoryStore) Put(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Email]; ok {
		return ErrUserExists
	}
	s.users[user.Email] = *user
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
