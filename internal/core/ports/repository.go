package ports

import (
	"context"

	"github.com/srgjo27/movie_booking/internal/core/domain"
)

// StateRepository is the persistence gateway for the whole booking state.
// Load returns domain.ErrStateAbsent on first run and wraps domain.ErrCorrupt
// when the stored data cannot be trusted.
type StateRepository interface {
	Load(ctx context.Context) (*domain.State, error)
	Save(ctx context.Context, state *domain.State) error
}

// SeatCache mirrors seat availability for readers outside the engine. It is
// never authoritative.
type SeatCache interface {
	Invalidate(ctx context.Context, showtimeID string) error
}

// LuckyDraw decides whether a booking wins the bonus.
type LuckyDraw interface {
	Draw() bool
}
