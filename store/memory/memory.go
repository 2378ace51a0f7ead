// Package memory provides an in-memory store implementation for tests and
// local development. It mirrors the semantics of store/sqlite: lookups that
// find nothing return (nil, nil), and ids are assigned on save.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/warp/deposit-engine/deposit"
)

// Store keeps users and deposits in mutex-guarded maps.
type Store struct {
	mu       sync.RWMutex
	users    map[deposit.UserID]deposit.User
	deposits map[deposit.DepositID]deposit.FixedDeposit
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:    make(map[deposit.UserID]deposit.User),
		deposits: make(map[deposit.DepositID]deposit.FixedDeposit),
	}
}

// =============================================================================
// DEPOSIT STORE (deposit.Store interface)
// =============================================================================

func (s *Store) SaveDeposit(_ context.Context, fd deposit.FixedDeposit) (*deposit.FixedDeposit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fd.ID == "" {
		fd.ID = deposit.DepositID(uuid.NewString())
	}
	s.deposits[fd.ID] = fd

	saved := fd
	return &saved, nil
}

func (s *Store) GetDeposit(_ context.Context, id deposit.DepositID) (*deposit.FixedDeposit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fd, ok := s.deposits[id]
	if !ok {
		return nil, nil
	}
	return &fd, nil
}

func (s *Store) ListDepositsByUser(_ context.Context, userID deposit.UserID) ([]deposit.FixedDeposit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []deposit.FixedDeposit
	for _, fd := range s.deposits {
		if fd.UserID == userID {
			result = append(result, fd)
		}
	}
	return result, nil
}

func (s *Store) UpdateDeposit(_ context.Context, fd deposit.FixedDeposit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deposits[fd.ID]; !ok {
		return deposit.ErrDepositNotFound
	}
	s.deposits[fd.ID] = fd
	return nil
}

// =============================================================================
// USER DIRECTORY (deposit.UserDirectory interface)
// =============================================================================

func (s *Store) SaveUser(_ context.Context, u deposit.User) (*deposit.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = deposit.UserID(uuid.NewString())
	}
	s.users[u.ID] = u

	saved := u
	return &saved, nil
}

func (s *Store) GetUser(_ context.Context, id deposit.UserID) (*deposit.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
