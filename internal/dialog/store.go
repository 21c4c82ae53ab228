package dialog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/avbelov/countbook/internal/repository"
)

// Store persists dialog states and serializes turns per user. Lock must be
// held around the whole load-handle-save cycle; updates from other users
// proceed concurrently.
type Store struct {
	repo repository.Repository

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewStore(repo repository.Repository) *Store {
	return &Store{repo: repo, locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the per-user turn lock and returns its release func.
func (s *Store) Lock(userID int64) func() {
	s.mu.Lock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	s.mu.Unlock()
	lock.Lock()
	return lock.Unlock
}

// Load reads the user's state, returning an idle state when none is stored
// or the stored data cannot be decoded.
func (s *Store) Load(ctx context.Context, userID int64) (*State, error) {
	step, data, err := s.repo.GetDialogState(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load dialog state: %w", err)
	}
	state := &State{}
	if step == "" {
		return state, nil
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, state); err != nil {
			return &State{}, nil
		}
	}
	state.Step = step
	return state, nil
}

// Save writes the state back, deleting the row when the state is idle.
func (s *Store) Save(ctx context.Context, userID int64, state *State) error {
	if state.Step == "" {
		if err := s.repo.DeleteDialogState(ctx, userID); err != nil {
			return fmt.Errorf("clear dialog state: %w", err)
		}
		return nil
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode dialog state: %w", err)
	}
	if err := s.repo.PutDialogState(ctx, userID, state.Step, data); err != nil {
		return fmt.Errorf("save dialog state: %w", err)
	}
	return nil
}
