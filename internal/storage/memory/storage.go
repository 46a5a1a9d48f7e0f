// Package memory implements the session store over in-process maps. It backs
// unit tests and key-only local runs; production deployments use postgres.
package memory

import (
	"context"
	"sync"

	"github.com/avelichko/authd/internal/models"
	"github.com/avelichko/authd/internal/storage"
)

type Storage struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	sessions map[string]models.RefreshSession
	users    map[int64]models.User
}

func NewStorage() *Storage {
	return &Storage{
		sessions: make(map[string]models.RefreshSession),
		users:    make(map[int64]models.User),
	}
}

// InTx serializes whole flows under a single lock. Mutations are applied
// immediately: the flows mutate at most one row per transaction, so the
// missing rollback is not observable through the Storage interface.
func (m *Storage) InTx(_ context.Context, fn func(r storage.Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	return fn(m)
}

func (m *Storage) CreateSession(_ context.Context, session models.RefreshSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.RefreshToken] = session
	return nil
}

func (m *Storage) FindSession(_ context.Context, refreshToken string) (*models.RefreshSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[refreshToken]
	if !ok {
		return nil, storage.ErrSessionNotFound
	}
	return &session, nil
}

func (m *Storage) DeleteSession(_ context.Context, refreshToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, refreshToken)
	return nil
}

func (m *Storage) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *Storage) FindUserByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return &user, nil
}

// AddUser seeds the read-only user directory. The real directory is owned by
// a separate subsystem, so only the in-memory store exposes writes.
func (m *Storage) AddUser(user models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users[user.ID] = user
}
