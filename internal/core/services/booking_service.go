package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srgjo27/movie_booking/internal/core/domain"
	"github.com/srgjo27/movie_booking/internal/core/ports"
)

// LoyaltyPolicy configures how bookings earn points.
type LoyaltyPolicy struct {
	PointsPerSeat  int
	LuckyDrawBonus int
	RevokeOnCancel bool
}

func DefaultLoyaltyPolicy() LoyaltyPolicy {
	return LoyaltyPolicy{
		PointsPerSeat:  1,
		LuckyDrawBonus: 5,
	}
}

type BookingService struct {
	store  *Store
	draw   ports.LuckyDraw
	cache  ports.SeatCache
	policy LoyaltyPolicy
	now    func() time.Time
	log    *zap.Logger
}

// NewBookingService wires the ledger. draw and cache may be nil: no bonus is
// ever drawn and no cache is invalidated.
func NewBookingService(store *Store, draw ports.LuckyDraw, cache ports.SeatCache, policy LoyaltyPolicy) *BookingService {
	return &BookingService{
		store:  store,
		draw:   draw,
		cache:  cache,
		policy: policy,
		now:    time.Now,
		log:    store.log.Named("bookings"),
	}
}

// Book claims the seats for the user in one step. On any failure no state
// is changed.
func (s *BookingService) Book(ctx context.Context, username, showtimeID string, seats []domain.Seat) (*domain.Booking, error) {
	s.store.mu.Lock()
	booking, err := s.book(username, showtimeID, seats)
	s.store.mu.Unlock()

	if err != nil {
		s.log.Info("booking rejected",
			zap.String("user", username),
			zap.String("showtime", showtimeID),
			zap.Error(err),
		)
		return nil, err
	}

	s.invalidate(ctx, showtimeID)

	s.log.Info("booking created",
		zap.String("booking", booking.ID),
		zap.String("user", username),
		zap.String("showtime", showtimeID),
		zap.Int("seats", len(booking.Seats)),
		zap.Bool("lucky_draw", booking.LuckyDraw),
	)

	return booking, nil
}

func (s *BookingService) book(username, showtimeID string, seats []domain.Seat) (*domain.Booking, error) {
	state := s.store.state

	user, ok := state.User(username)
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}

	st, ok := state.ShowTime(showtimeID)
	if !ok {
		return nil, fmt.Errorf("showtime %s: %w", showtimeID, domain.ErrNotFound)
	}

	movie, ok := state.Movie(st.MovieID)
	if !ok {
		return nil, fmt.Errorf("movie %s: %w", st.MovieID, domain.ErrNotFound)
	}

	if err := st.Seats.Reserve(seats); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:          state.IDs.Next(domain.KindBooking),
		Code:        newBookingCode(),
		Username:    user.Username,
		ShowTimeID:  st.ID,
		MovieTitle:  movie.Title,
		Seats:       append([]domain.Seat(nil), seats...),
		TotalAmount: float64(len(seats)) * movie.Price,
		Points:      len(seats) * s.policy.PointsPerSeat,
		Status:      domain.BookingActive,
		CreatedAt:   s.now().UTC().Truncate(time.Second),
	}

	if s.draw != nil && s.draw.Draw() {
		booking.LuckyDraw = true
		booking.BonusPoints = s.policy.LuckyDrawBonus
	}

	if err := state.PutBooking(booking); err != nil {
		s.rollbackSeats(st, seats)
		return nil, fmt.Errorf("record booking: %w", err)
	}

	user.BookingIDs = append(user.BookingIDs, booking.ID)
	user.Points += booking.AwardedPoints()

	out := booking.Clone()

	return &out, nil
}

func (s *BookingService) rollbackSeats(st *domain.ShowTime, seats []domain.Seat) {
	if err := st.Seats.Release(seats); err != nil {
		s.log.Error("failed to roll back seat claim", zap.String("showtime", st.ID), zap.Error(err))
	}
}

// Cancel releases the booking's seats and marks it cancelled. Only the owner
// or an admin may cancel.
func (s *BookingService) Cancel(ctx context.Context, requester, bookingID string) (*domain.Booking, error) {
	s.store.mu.Lock()
	booking, err := s.cancel(requester, bookingID)
	s.store.mu.Unlock()

	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, booking.ShowTimeID)

	s.log.Info("booking cancelled",
		zap.String("booking", booking.ID),
		zap.String("by", requester),
	)

	return booking, nil
}

func (s *BookingService) cancel(requester, bookingID string) (*domain.Booking, error) {
	state := s.store.state

	user, ok := state.User(requester)
	if !ok {
		return nil, fmt.Errorf("user %q: %w", requester, domain.ErrNotFound)
	}

	booking, ok := state.Booking(bookingID)
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", bookingID, domain.ErrNotFound)
	}

	if booking.Username != user.Username && !user.IsAdmin() {
		return nil, fmt.Errorf("booking %s belongs to another user: %w", bookingID, domain.ErrForbidden)
	}

	if !booking.IsActive() {
		return nil, fmt.Errorf("booking %s: %w", bookingID, domain.ErrAlreadyCancelled)
	}

	if err := s.cancelLocked(booking); err != nil {
		return nil, err
	}

	out := booking.Clone()

	return &out, nil
}

// cancelLocked expects the store lock to be held.
func (s *BookingService) cancelLocked(b *domain.Booking) error {
	state := s.store.state

	if st, ok := state.ShowTime(b.ShowTimeID); ok {
		if err := st.Seats.Release(b.Seats); err != nil {
			return fmt.Errorf("cancel booking %s: %w", b.ID, err)
		}
	}

	now := s.now().UTC().Truncate(time.Second)
	b.Status = domain.BookingCancelled
	b.CancelledAt = &now

	if s.policy.RevokeOnCancel {
		if owner, ok := state.User(b.Username); ok {
			owner.Points -= b.AwardedPoints()
		}
	}

	return nil
}

func (s *BookingService) Get(id string) (*domain.Booking, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	b, ok := s.store.state.Booking(id)
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}

	out := b.Clone()

	return &out, nil
}

// ListAll returns every booking of every user in ledger order.
func (s *BookingService) ListAll() []domain.Booking {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	bookings := s.store.state.Bookings()
	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.Clone())
	}

	return out
}

// ListForUser returns the user's bookings in the order they were made.
func (s *BookingService) ListForUser(username string) ([]domain.Booking, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	user, ok := s.store.state.User(username)
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}

	out := make([]domain.Booking, 0, len(user.BookingIDs))
	for _, id := range user.BookingIDs {
		if b, ok := s.store.state.Booking(id); ok {
			out = append(out, b.Clone())
		}
	}

	return out, nil
}

func (s *BookingService) invalidate(ctx context.Context, showtimeID string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Invalidate(ctx, showtimeID); err != nil {
		s.log.Warn("failed to invalidate seat cache", zap.String("showtime", showtimeID), zap.Error(err))
	}
}

func newBookingCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
