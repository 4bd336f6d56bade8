package domain_test

import (
	"testing"
	"time"

	"github.com/srgjo27/movie_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDAllocator_Monotonic(t *testing.T) {
	ids := domain.NewIDAllocator()

	assert.Equal(t, "M1", ids.Next(domain.KindMovie))
	assert.Equal(t, "M2", ids.Next(domain.KindMovie))
	assert.Equal(t, "S1", ids.Next(domain.KindShowTime))
	assert.Equal(t, "B1", ids.Next(domain.KindBooking))

	ids.Restore(domain.KindMovie, 1)
	assert.Equal(t, "M3", ids.Next(domain.KindMovie), "restore never lowers the mark")

	ids.Observe(domain.KindBooking, "B41")
	ids.Observe(domain.KindBooking, "legacy-id")
	assert.Equal(t, "B42", ids.Next(domain.KindBooking))

	assert.Equal(t, map[domain.IDKind]int64{
		domain.KindMovie:    3,
		domain.KindShowTime: 1,
		domain.KindBooking:  42,
	}, ids.Counters())
}

func newIntegrityState(t *testing.T) (*domain.State, *domain.ShowTime) {
	t.Helper()

	state := domain.NewState()
	require.NoError(t, state.PutUser(&domain.User{Username: "alice", Role: domain.RoleUser}))
	require.NoError(t, state.PutMovie(&domain.Movie{ID: "M1", Title: "Inception", DurationMin: 148}))

	seats, err := domain.NewSeatMap(2, 2)
	require.NoError(t, err)
	st := &domain.ShowTime{ID: "S1", MovieID: "M1", StartsAt: time.Now(), Room: "Theater A", Seats: seats}
	require.NoError(t, state.PutShowTime(st))

	return state, st
}

func TestState_CheckIntegrity(t *testing.T) {
	state, st := newIntegrityState(t)
	held := []domain.Seat{{Row: 0, Col: 0}}
	require.NoError(t, st.Seats.Reserve(held))
	require.NoError(t, state.PutBooking(&domain.Booking{
		ID: "B1", Username: "alice", ShowTimeID: "S1", Seats: held, Status: domain.BookingActive,
	}))
	alice, _ := state.User("alice")
	alice.BookingIDs = []string{"B1"}

	assert.NoError(t, state.CheckIntegrity())

	movie, _ := state.Movie("M1")
	assert.Equal(t, []string{"S1"}, movie.ShowTimeIDs)
}

func TestState_CheckIntegrity_UserHistory(t *testing.T) {
	tests := []struct {
		name    string
		history []string
	}{
		{"booking missing from history", nil},
		{"booking listed twice", []string{"B1", "B1"}},
		{"unknown booking in history", []string{"B1", "B7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, st := newIntegrityState(t)
			held := []domain.Seat{{Row: 1, Col: 0}}
			require.NoError(t, st.Seats.Reserve(held))
			require.NoError(t, state.PutBooking(&domain.Booking{
				ID: "B1", Username: "alice", ShowTimeID: "S1", Seats: held, Status: domain.BookingActive,
			}))
			alice, _ := state.User("alice")
			alice.BookingIDs = tt.history

			assert.Error(t, state.CheckIntegrity())
		})
	}
}

func TestState_CheckIntegrity_CancelledBookingStillNeedsHistory(t *testing.T) {
	state, _ := newIntegrityState(t)
	require.NoError(t, state.PutBooking(&domain.Booking{
		ID: "B1", Username: "alice", ShowTimeID: "S1", Seats: []domain.Seat{{Row: 0, Col: 0}}, Status: domain.BookingCancelled,
	}))

	assert.Error(t, state.CheckIntegrity())

	alice, _ := state.User("alice")
	alice.BookingIDs = []string{"B1"}
	assert.NoError(t, state.CheckIntegrity())
}

func TestState_CheckIntegrity_OccupancyMismatch(t *testing.T) {
	state, st := newIntegrityState(t)
	require.NoError(t, st.Seats.Reserve([]domain.Seat{{Row: 1, Col: 1}}))

	assert.Error(t, state.CheckIntegrity())
}

func TestState_CheckIntegrity_OverlappingBookings(t *testing.T) {
	state, st := newIntegrityState(t)
	held := []domain.Seat{{Row: 0, Col: 1}}
	require.NoError(t, st.Seats.Reserve(held))

	for _, id := range []string{"B1", "B2"} {
		require.NoError(t, state.PutBooking(&domain.Booking{
			ID: id, Username: "alice", ShowTimeID: "S1", Seats: held, Status: domain.BookingActive,
		}))
	}

	assert.Error(t, state.CheckIntegrity())
}

func TestState_DeleteShowTimeUnlinksMovie(t *testing.T) {
	state, _ := newIntegrityState(t)

	state.DeleteShowTime("S1")

	_, ok := state.ShowTime("S1")
	assert.False(t, ok)
	movie, _ := state.Movie("M1")
	assert.Empty(t, movie.ShowTimeIDs)
	assert.Empty(t, state.ShowTimes())
}

func TestState_PutRejectsDuplicates(t *testing.T) {
	state, _ := newIntegrityState(t)

	assert.ErrorIs(t, state.PutUser(&domain.User{Username: "alice"}), domain.ErrAlreadyExists)
	assert.ErrorIs(t, state.PutMovie(&domain.Movie{ID: "M1"}), domain.ErrAlreadyExists)

	seats, _ := domain.NewSeatMap(1, 1)
	err := state.PutShowTime(&domain.ShowTime{ID: "S9", MovieID: "M404", Seats: seats})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
