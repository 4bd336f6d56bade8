package domain

import "fmt"

// SeatMap is the row-major occupancy grid of a single showtime.
type SeatMap struct {
	rows     int
	cols     int
	occupied []bool
}

func NewSeatMap(rows, cols int) (*SeatMap, error) {
	if rows < 1 || rows > MaxRows || cols < 1 || cols > MaxCols {
		return nil, fmt.Errorf("%w: seat layout %dx%d", ErrInvalidInput, rows, cols)
	}

	return &SeatMap{
		rows:     rows,
		cols:     cols,
		occupied: make([]bool, rows*cols),
	}, nil
}

// RestoreSeatMap rebuilds a seat map from a persisted occupancy vector.
func RestoreSeatMap(rows, cols int, occupancy []bool) (*SeatMap, error) {
	m, err := NewSeatMap(rows, cols)
	if err != nil {
		return nil, err
	}

	if len(occupancy) != rows*cols {
		return nil, fmt.Errorf("%w: occupancy has %d cells, layout needs %d", ErrInvalidInput, len(occupancy), rows*cols)
	}

	copy(m.occupied, occupancy)

	return m, nil
}

func (m *SeatMap) Rows() int     { return m.rows }
func (m *SeatMap) Cols() int     { return m.cols }
func (m *SeatMap) Capacity() int { return m.rows * m.cols }

func (m *SeatMap) Contains(s Seat) bool {
	return s.Row >= 0 && s.Row < m.rows && s.Col >= 0 && s.Col < m.cols
}

func (m *SeatMap) index(s Seat) int {
	return s.Row*m.cols + s.Col
}

func (m *SeatMap) IsOccupied(s Seat) bool {
	return m.Contains(s) && m.occupied[m.index(s)]
}

func (m *SeatMap) OccupiedCount() int {
	n := 0
	for _, o := range m.occupied {
		if o {
			n++
		}
	}

	return n
}

// Available lists free seats in row-major order.
func (m *SeatMap) Available() []Seat {
	seats := make([]Seat, 0, m.Capacity()-m.OccupiedCount())
	for i, o := range m.occupied {
		if !o {
			seats = append(seats, Seat{Row: i / m.cols, Col: i % m.cols})
		}
	}

	return seats
}

// Occupancy returns a copy of the flat occupancy vector.
func (m *SeatMap) Occupancy() []bool {
	out := make([]bool, len(m.occupied))
	copy(out, m.occupied)

	return out
}

// Validate checks that a seat request is non-empty, in range and free of
// duplicates.
func (m *SeatMap) Validate(seats []Seat) error {
	if len(seats) == 0 {
		return fmt.Errorf("%w: no seats selected", ErrInvalidSeat)
	}

	seen := make(map[Seat]struct{}, len(seats))
	for _, s := range seats {
		if !m.Contains(s) {
			return fmt.Errorf("%w: %s is outside the %dx%d layout", ErrInvalidSeat, s, m.rows, m.cols)
		}

		if _, dup := seen[s]; dup {
			return fmt.Errorf("%w: %s selected twice", ErrInvalidSeat, s)
		}

		seen[s] = struct{}{}
	}

	return nil
}

// Reserve marks every seat occupied only when all of them are free. On
// conflict nothing is changed and a *SeatConflictError lists the taken seats.
func (m *SeatMap) Reserve(seats []Seat) error {
	if err := m.Validate(seats); err != nil {
		return err
	}

	var taken []Seat
	for _, s := range seats {
		if m.occupied[m.index(s)] {
			taken = append(taken, s)
		}
	}

	if len(taken) > 0 {
		return &SeatConflictError{Seats: taken}
	}

	for _, s := range seats {
		m.occupied[m.index(s)] = true
	}

	return nil
}

// Release frees the given seats. Fails without changes if any is already free.
func (m *SeatMap) Release(seats []Seat) error {
	if err := m.Validate(seats); err != nil {
		return err
	}

	for _, s := range seats {
		if !m.occupied[m.index(s)] {
			return fmt.Errorf("%w: %s", ErrInvalidRelease, s)
		}
	}

	for _, s := range seats {
		m.occupied[m.index(s)] = false
	}

	return nil
}

func (m *SeatMap) Clone() *SeatMap {
	return &SeatMap{rows: m.rows, cols: m.cols, occupied: m.Occupancy()}
}
