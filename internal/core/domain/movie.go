package domain

import "time"

const DefaultSeatPrice = 12.50

type Movie struct {
	ID          string
	Title       string
	Genre       string
	DurationMin int
	Rating      string
	Description string
	Price       float64
	ShowTimeIDs []string
}

type ShowTime struct {
	ID       string
	MovieID  string
	StartsAt time.Time
	Room     string
	Seats    *SeatMap
}

func (st *ShowTime) AvailableCount() int {
	return st.Seats.Capacity() - st.Seats.OccupiedCount()
}

func (m *Movie) Clone() Movie {
	out := *m
	out.ShowTimeIDs = append([]string(nil), m.ShowTimeIDs...)

	return out
}

// Clone copies the showtime including a detached seat map.
func (st *ShowTime) Clone() ShowTime {
	out := *st
	out.Seats = st.Seats.Clone()

	return out
}
