package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MaxRows = 26
	MaxCols = 99
)

// Seat is a zero-based coordinate in a showtime's seat grid.
type Seat struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String renders the seat the way it is printed on tickets, e.g. "A1".
func (s Seat) String() string {
	if s.Row < 0 || s.Row >= MaxRows {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}

	return fmt.Sprintf("%c%d", 'A'+rune(s.Row), s.Col+1)
}

// ParseSeat accepts "A1", "a1", "A,1" and "A-1".
func ParseSeat(label string) (Seat, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	label = strings.NewReplacer(",", "", "-", "", " ", "").Replace(label)

	if len(label) < 2 {
		return Seat{}, fmt.Errorf("%w: %q", ErrInvalidSeat, label)
	}

	row := label[0]
	if row < 'A' || row > 'Z' {
		return Seat{}, fmt.Errorf("%w: bad row in %q", ErrInvalidSeat, label)
	}

	col, err := strconv.Atoi(label[1:])
	if err != nil || col < 1 {
		return Seat{}, fmt.Errorf("%w: bad column in %q", ErrInvalidSeat, label)
	}

	return Seat{Row: int(row - 'A'), Col: col - 1}, nil
}

// ParseSeats splits a list such as "A1;B2;C3" (";" or whitespace separated).
func ParseSeats(input string) ([]Seat, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ';' || r == ' ' || r == '\t'
	})

	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no seats selected", ErrInvalidSeat)
	}

	seats := make([]Seat, 0, len(fields))
	for _, f := range fields {
		seat, err := ParseSeat(f)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	return seats, nil
}

// SeatLabels formats seats for display.
func SeatLabels(seats []Seat) string {
	labels := make([]string, 0, len(seats))
	for _, s := range seats {
		labels = append(labels, s.String())
	}

	return strings.Join(labels, ", ")
}
