package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/srgjo27/movie_booking/internal/core/domain"
)

// RenderSeatMap draws the grid with row letters and 1-based column numbers.
// Free seats show as "[ ]", taken seats as "[X]".
func RenderSeatMap(m *domain.SeatMap) string {
	var b strings.Builder

	b.WriteString("\nSEAT MAP ([ ] available, [X] booked)\n")
	b.WriteString("    ")
	for col := 0; col < m.Cols(); col++ {
		fmt.Fprintf(&b, "%3d", col+1)
	}
	b.WriteString("\n")

	for row := 0; row < m.Rows(); row++ {
		fmt.Fprintf(&b, " %c :", 'A'+rune(row))
		for col := 0; col < m.Cols(); col++ {
			if m.IsOccupied(domain.Seat{Row: row, Col: col}) {
				b.WriteString("[X]")
			} else {
				b.WriteString("[ ]")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// describe turns an engine error into the message shown to the user.
func describe(err error) string {
	var conflict *domain.SeatConflictError

	switch {
	case errors.As(err, &conflict):
		return fmt.Sprintf("seats %s are already booked, nothing was reserved", domain.SeatLabels(conflict.Seats))
	case errors.Is(err, domain.ErrBadCredentials):
		return "incorrect password"
	case errors.Is(err, domain.ErrForbidden):
		return "you can only cancel your own bookings"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "that name is already taken"
	case errors.Is(err, domain.ErrAlreadyCancelled):
		return "that booking is already cancelled"
	case errors.Is(err, domain.ErrNotFound):
		return err.Error()
	case errors.Is(err, domain.ErrInvalidSeat), errors.Is(err, domain.ErrInvalidInput):
		return err.Error()
	default:
		return "something went wrong: " + err.Error()
	}
}
