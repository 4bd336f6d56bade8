package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/srgjo27/movie_booking/internal/core/domain"
)

const (
	DefaultRows = 5
	DefaultCols = 10
)

type NewMovie struct {
	Title       string
	Genre       string
	DurationMin int
	Rating      string
	Description string
	Price       float64
}

type NewShowTime struct {
	MovieID  string
	StartsAt time.Time
	Room     string
	Rows     int
	Cols     int
}

type CatalogService struct {
	store    *Store
	bookings *BookingService
	log      *zap.Logger
}

func NewCatalogService(store *Store, bookings *BookingService) *CatalogService {
	return &CatalogService{
		store:    store,
		bookings: bookings,
		log:      store.log.Named("catalog"),
	}
}

func (s *CatalogService) AddMovie(ctx context.Context, req NewMovie) (*domain.Movie, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: movie title is required", domain.ErrInvalidInput)
	}

	if req.DurationMin <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInput)
	}

	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	state := s.store.state
	movie := &domain.Movie{
		ID:          state.IDs.Next(domain.KindMovie),
		Title:       title,
		Genre:       strings.TrimSpace(req.Genre),
		DurationMin: req.DurationMin,
		Rating:      strings.TrimSpace(req.Rating),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
	}

	if err := state.PutMovie(movie); err != nil {
		return nil, err
	}

	s.log.Info("movie added", zap.String("movie", movie.ID), zap.String("title", movie.Title))

	out := movie.Clone()

	return &out, nil
}

// RemoveMovie cancels every active booking on the movie's showtimes, drops
// the showtimes and then the movie.
func (s *CatalogService) RemoveMovie(ctx context.Context, id string) error {
	s.store.mu.Lock()

	movie, ok := s.store.state.Movie(id)
	if !ok {
		s.store.mu.Unlock()
		return fmt.Errorf("movie %s: %w", id, domain.ErrNotFound)
	}

	showtimeIDs := append([]string(nil), movie.ShowTimeIDs...)
	for _, stID := range showtimeIDs {
		if err := s.checkCascade(stID); err != nil {
			s.store.mu.Unlock()
			return err
		}
	}

	cancelled := 0
	for _, stID := range showtimeIDs {
		n, err := s.removeShowTimeLocked(stID)
		if err != nil {
			s.store.mu.Unlock()
			return err
		}
		cancelled += n
	}

	s.store.state.DeleteMovie(id)
	s.store.mu.Unlock()

	for _, stID := range showtimeIDs {
		s.bookings.invalidate(ctx, stID)
	}

	s.log.Info("movie removed",
		zap.String("movie", id),
		zap.Int("showtimes", len(showtimeIDs)),
		zap.Int("cancelled_bookings", cancelled),
	)

	return nil
}

func (s *CatalogService) AddShowTime(ctx context.Context, req NewShowTime) (*domain.ShowTime, error) {
	rows, cols := req.Rows, req.Cols
	if rows == 0 && cols == 0 {
		rows, cols = DefaultRows, DefaultCols
	}

	seats, err := domain.NewSeatMap(rows, cols)
	if err != nil {
		return nil, err
	}

	room := strings.TrimSpace(req.Room)
	if room == "" {
		return nil, fmt.Errorf("%w: room is required", domain.ErrInvalidInput)
	}

	if req.StartsAt.IsZero() {
		return nil, fmt.Errorf("%w: start time is required", domain.ErrInvalidInput)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	state := s.store.state
	if _, ok := state.Movie(req.MovieID); !ok {
		return nil, fmt.Errorf("movie %s: %w", req.MovieID, domain.ErrNotFound)
	}

	st := &domain.ShowTime{
		ID:       state.IDs.Next(domain.KindShowTime),
		MovieID:  req.MovieID,
		StartsAt: req.StartsAt.Truncate(time.Minute),
		Room:     room,
		Seats:    seats,
	}

	if err := state.PutShowTime(st); err != nil {
		return nil, err
	}

	s.log.Info("showtime added",
		zap.String("showtime", st.ID),
		zap.String("movie", st.MovieID),
		zap.Time("starts_at", st.StartsAt),
	)

	out := st.Clone()

	return &out, nil
}

// RemoveShowTime cancels the showtime's active bookings before deleting it.
func (s *CatalogService) RemoveShowTime(ctx context.Context, id string) error {
	s.store.mu.Lock()
	cancelled, err := s.removeShowTimeLocked(id)
	s.store.mu.Unlock()

	if err != nil {
		return err
	}

	s.bookings.invalidate(ctx, id)

	s.log.Info("showtime removed", zap.String("showtime", id), zap.Int("cancelled_bookings", cancelled))

	return nil
}

func (s *CatalogService) removeShowTimeLocked(id string) (int, error) {
	state := s.store.state
	if _, ok := state.ShowTime(id); !ok {
		return 0, fmt.Errorf("showtime %s: %w", id, domain.ErrNotFound)
	}

	if err := s.checkCascade(id); err != nil {
		return 0, err
	}

	active := state.ActiveBookingsFor(id)
	for _, b := range active {
		if err := s.bookings.cancelLocked(b); err != nil {
			return 0, err
		}
	}

	state.DeleteShowTime(id)

	return len(active), nil
}

// checkCascade verifies that every active booking on the showtime can be
// released, so a cascade never stops half way.
func (s *CatalogService) checkCascade(id string) error {
	st, ok := s.store.state.ShowTime(id)
	if !ok {
		return fmt.Errorf("showtime %s: %w", id, domain.ErrNotFound)
	}

	for _, b := range s.store.state.ActiveBookingsFor(id) {
		for _, seat := range b.Seats {
			if !st.Seats.IsOccupied(seat) {
				return fmt.Errorf("booking %s seat %s: %w", b.ID, seat, domain.ErrInvalidRelease)
			}
		}
	}

	return nil
}

// ListMovies returns movies in the order they were added.
func (s *CatalogService) ListMovies() []domain.Movie {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	movies := s.store.state.Movies()
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Clone())
	}

	return out
}

func (s *CatalogService) GetMovie(id string) (*domain.Movie, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	m, ok := s.store.state.Movie(id)
	if !ok {
		return nil, fmt.Errorf("movie %s: %w", id, domain.ErrNotFound)
	}

	out := m.Clone()

	return &out, nil
}

func (s *CatalogService) ListShowTimes(movieID string) ([]domain.ShowTime, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	m, ok := s.store.state.Movie(movieID)
	if !ok {
		return nil, fmt.Errorf("movie %s: %w", movieID, domain.ErrNotFound)
	}

	out := make([]domain.ShowTime, 0, len(m.ShowTimeIDs))
	for _, id := range m.ShowTimeIDs {
		if st, ok := s.store.state.ShowTime(id); ok {
			out = append(out, st.Clone())
		}
	}

	return out, nil
}

func (s *CatalogService) GetShowTime(id string) (*domain.ShowTime, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	st, ok := s.store.state.ShowTime(id)
	if !ok {
		return nil, fmt.Errorf("showtime %s: %w", id, domain.ErrNotFound)
	}

	out := st.Clone()

	return &out, nil
}

// Available lists the free seats of a showtime.
func (s *CatalogService) Available(id string) ([]domain.Seat, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	st, ok := s.store.state.ShowTime(id)
	if !ok {
		return nil, fmt.Errorf("showtime %s: %w", id, domain.ErrNotFound)
	}

	return st.Seats.Available(), nil
}
