package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/srgjo27/movie_booking/internal/core/domain"
	"github.com/srgjo27/movie_booking/internal/core/ports"
)

// Store owns the booking state and serialises every composite operation on
// it. Services share one Store.
type Store struct {
	mu    sync.Mutex
	state *domain.State
	repo  ports.StateRepository
	log   *zap.Logger
}

func NewStore(state *domain.State, repo ports.StateRepository, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}

	return &Store{state: state, repo: repo, log: log}
}

// Save is an explicit save point: it persists the full state.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		return nil
	}

	if err := s.repo.Save(ctx, s.state); err != nil {
		s.log.Error("failed to save state", zap.Error(err))
		return fmt.Errorf("save state: %w", err)
	}

	s.log.Debug("state saved",
		zap.Int("movies", len(s.state.Movies())),
		zap.Int("bookings", len(s.state.Bookings())),
	)

	return nil
}

// Bootstrap loads the persisted state. On first run it seeds the default
// catalog and accounts and saves them immediately. A corrupt file is
// returned as an error and never replaced.
func Bootstrap(ctx context.Context, repo ports.StateRepository, seed SeedOptions, log *zap.Logger) (*domain.State, error) {
	state, err := repo.Load(ctx)
	if err == nil {
		log.Info("state loaded",
			zap.Int("movies", len(state.Movies())),
			zap.Int("users", len(state.Users())),
			zap.Int("bookings", len(state.Bookings())),
		)
		return state, nil
	}

	if !errors.Is(err, domain.ErrStateAbsent) {
		return nil, err
	}

	log.Info("no state file found, seeding sample data")

	state, err = NewSeedState(seed)
	if err != nil {
		return nil, fmt.Errorf("seed state: %w", err)
	}

	if err := repo.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save seeded state: %w", err)
	}

	return state, nil
}
