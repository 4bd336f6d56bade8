package domain_test

import (
	"errors"
	"testing"

	"github.com/srgjo27/movie_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seat(row, col int) domain.Seat {
	return domain.Seat{Row: row, Col: col}
}

func TestSeatMap_ReserveIsAllOrNothing(t *testing.T) {
	m, err := domain.NewSeatMap(2, 2)
	require.NoError(t, err)

	require.NoError(t, m.Reserve([]domain.Seat{seat(0, 0), seat(0, 1)}))

	err = m.Reserve([]domain.Seat{seat(0, 0), seat(1, 0)})

	assert.ErrorIs(t, err, domain.ErrSeatConflict)
	var conflict *domain.SeatConflictError
	if assert.True(t, errors.As(err, &conflict)) {
		assert.Equal(t, []domain.Seat{seat(0, 0)}, conflict.Seats)
	}
	assert.False(t, m.IsOccupied(seat(1, 0)))
	assert.Equal(t, 2, m.OccupiedCount())
}

func TestSeatMap_ReserveRejectsBadRequests(t *testing.T) {
	m, err := domain.NewSeatMap(2, 2)
	require.NoError(t, err)

	tests := []struct {
		name  string
		seats []domain.Seat
	}{
		{"empty", nil},
		{"row out of range", []domain.Seat{seat(2, 0)}},
		{"negative column", []domain.Seat{seat(0, -1)}},
		{"duplicate", []domain.Seat{seat(1, 1), seat(1, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, m.Reserve(tt.seats), domain.ErrInvalidSeat)
			assert.Equal(t, 0, m.OccupiedCount())
		})
	}
}

func TestSeatMap_Release(t *testing.T) {
	m, err := domain.NewSeatMap(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Reserve([]domain.Seat{seat(1, 2)}))

	err = m.Release([]domain.Seat{seat(1, 2), seat(0, 0)})
	assert.ErrorIs(t, err, domain.ErrInvalidRelease)
	assert.True(t, m.IsOccupied(seat(1, 2)), "failed release must not free anything")

	require.NoError(t, m.Release([]domain.Seat{seat(1, 2)}))
	assert.ErrorIs(t, m.Release([]domain.Seat{seat(1, 2)}), domain.ErrInvalidRelease)
	assert.Len(t, m.Available(), 6)
}

func TestSeatMap_AvailableAndOccupancy(t *testing.T) {
	m, err := domain.NewSeatMap(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Reserve([]domain.Seat{seat(0, 1), seat(1, 0)}))

	assert.Equal(t, []domain.Seat{seat(0, 0), seat(1, 1)}, m.Available())
	assert.Equal(t, []bool{false, true, true, false}, m.Occupancy())

	restored, err := domain.RestoreSeatMap(2, 2, m.Occupancy())
	require.NoError(t, err)
	assert.Equal(t, m.Occupancy(), restored.Occupancy())

	_, err = domain.RestoreSeatMap(2, 2, []bool{true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewSeatMap_InvalidLayout(t *testing.T) {
	for _, layout := range [][2]int{{0, 5}, {5, 0}, {27, 1}, {1, 100}} {
		_, err := domain.NewSeatMap(layout[0], layout[1])
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "layout %v", layout)
	}
}

func TestParseSeat(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Seat
	}{
		{"A1", seat(0, 0)},
		{"b5", seat(1, 4)},
		{"C,10", seat(2, 9)},
		{" E-3 ", seat(4, 2)},
	}

	for _, tt := range tests {
		got, err := domain.ParseSeat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "A", "1A", "A0", "Ax"} {
		_, err := domain.ParseSeat(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidSeat, bad)
	}
}

func TestParseSeats(t *testing.T) {
	seats, err := domain.ParseSeats("A,1;B,2 C3")
	require.NoError(t, err)
	assert.Equal(t, []domain.Seat{seat(0, 0), seat(1, 1), seat(2, 2)}, seats)
	assert.Equal(t, "A1, B2, C3", domain.SeatLabels(seats))

	_, err = domain.ParseSeats(" ; ")
	assert.ErrorIs(t, err, domain.ErrInvalidSeat)
}
