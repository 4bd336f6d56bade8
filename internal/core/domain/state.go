package domain

import (
	"fmt"
	"slices"
)

// State is the complete booking engine state: catalog, ledger, accounts and
// the identifier allocator. Collections keep insertion order.
type State struct {
	IDs *IDAllocator

	movies    []*Movie
	showtimes []*ShowTime
	bookings  []*Booking
	users     []*User

	movieIdx    map[string]*Movie
	showtimeIdx map[string]*ShowTime
	bookingIdx  map[string]*Booking
	userIdx     map[string]*User
}

func NewState() *State {
	return &State{
		IDs:         NewIDAllocator(),
		movieIdx:    make(map[string]*Movie),
		showtimeIdx: make(map[string]*ShowTime),
		bookingIdx:  make(map[string]*Booking),
		userIdx:     make(map[string]*User),
	}
}

func (s *State) Movies() []*Movie       { return slices.Clone(s.movies) }
func (s *State) ShowTimes() []*ShowTime { return slices.Clone(s.showtimes) }
func (s *State) Bookings() []*Booking   { return slices.Clone(s.bookings) }
func (s *State) Users() []*User         { return slices.Clone(s.users) }

func (s *State) Movie(id string) (*Movie, bool) {
	m, ok := s.movieIdx[id]
	return m, ok
}

func (s *State) ShowTime(id string) (*ShowTime, bool) {
	st, ok := s.showtimeIdx[id]
	return st, ok
}

func (s *State) Booking(id string) (*Booking, bool) {
	b, ok := s.bookingIdx[id]
	return b, ok
}

func (s *State) User(username string) (*User, bool) {
	u, ok := s.userIdx[username]
	return u, ok
}

func (s *State) PutMovie(m *Movie) error {
	if _, dup := s.movieIdx[m.ID]; dup {
		return fmt.Errorf("%w: movie %s", ErrAlreadyExists, m.ID)
	}

	s.movies = append(s.movies, m)
	s.movieIdx[m.ID] = m
	s.IDs.Observe(KindMovie, m.ID)

	return nil
}

// PutShowTime registers a showtime and links it to its movie.
func (s *State) PutShowTime(st *ShowTime) error {
	if _, dup := s.showtimeIdx[st.ID]; dup {
		return fmt.Errorf("%w: showtime %s", ErrAlreadyExists, st.ID)
	}

	m, ok := s.movieIdx[st.MovieID]
	if !ok {
		return fmt.Errorf("%w: movie %s", ErrNotFound, st.MovieID)
	}

	s.showtimes = append(s.showtimes, st)
	s.showtimeIdx[st.ID] = st
	if !slices.Contains(m.ShowTimeIDs, st.ID) {
		m.ShowTimeIDs = append(m.ShowTimeIDs, st.ID)
	}
	s.IDs.Observe(KindShowTime, st.ID)

	return nil
}

func (s *State) PutBooking(b *Booking) error {
	if _, dup := s.bookingIdx[b.ID]; dup {
		return fmt.Errorf("%w: booking %s", ErrAlreadyExists, b.ID)
	}

	s.bookings = append(s.bookings, b)
	s.bookingIdx[b.ID] = b
	s.IDs.Observe(KindBooking, b.ID)

	return nil
}

func (s *State) PutUser(u *User) error {
	if _, dup := s.userIdx[u.Username]; dup {
		return fmt.Errorf("%w: user %q", ErrAlreadyExists, u.Username)
	}

	s.users = append(s.users, u)
	s.userIdx[u.Username] = u

	return nil
}

// DeleteShowTime unlinks a showtime from its movie and drops it. Bookings are
// left untouched; callers cancel them first.
func (s *State) DeleteShowTime(id string) {
	st, ok := s.showtimeIdx[id]
	if !ok {
		return
	}

	if m, ok := s.movieIdx[st.MovieID]; ok {
		m.ShowTimeIDs = slices.DeleteFunc(m.ShowTimeIDs, func(x string) bool { return x == id })
	}

	s.showtimes = slices.DeleteFunc(s.showtimes, func(x *ShowTime) bool { return x.ID == id })
	delete(s.showtimeIdx, id)
}

func (s *State) DeleteMovie(id string) {
	s.movies = slices.DeleteFunc(s.movies, func(x *Movie) bool { return x.ID == id })
	delete(s.movieIdx, id)
}

// ActiveBookingsFor lists active bookings on a showtime in ledger order.
func (s *State) ActiveBookingsFor(showtimeID string) []*Booking {
	var out []*Booking
	for _, b := range s.bookings {
		if b.ShowTimeID == showtimeID && b.IsActive() {
			out = append(out, b)
		}
	}

	return out
}

// CheckIntegrity verifies the cross-entity invariants: every reference
// resolves, active bookings sit inside their showtime's layout without
// overlapping, and each showtime's occupancy is exactly the union of its
// active bookings' seats.
func (s *State) CheckIntegrity() error {
	listed := make(map[string]bool, len(s.showtimes))
	for _, m := range s.movies {
		for _, stID := range m.ShowTimeIDs {
			st, ok := s.showtimeIdx[stID]
			if !ok || st.MovieID != m.ID {
				return fmt.Errorf("movie %s lists unknown showtime %s", m.ID, stID)
			}

			if listed[stID] {
				return fmt.Errorf("showtime %s listed twice", stID)
			}

			listed[stID] = true
		}
	}

	if len(listed) != len(s.showtimes) {
		return fmt.Errorf("%d showtimes are not listed by their movie", len(s.showtimes)-len(listed))
	}

	claimed := make(map[string]map[Seat]string)
	for _, st := range s.showtimes {
		if _, ok := s.movieIdx[st.MovieID]; !ok {
			return fmt.Errorf("showtime %s references unknown movie %s", st.ID, st.MovieID)
		}

		claimed[st.ID] = make(map[Seat]string)
	}

	for _, b := range s.bookings {
		if _, ok := s.userIdx[b.Username]; !ok {
			return fmt.Errorf("booking %s references unknown user %q", b.ID, b.Username)
		}

		if b.Status != BookingActive && b.Status != BookingCancelled {
			return fmt.Errorf("booking %s has unknown status %q", b.ID, b.Status)
		}

		if len(b.Seats) == 0 {
			return fmt.Errorf("booking %s holds no seats", b.ID)
		}

		if !b.IsActive() {
			continue
		}

		st, ok := s.showtimeIdx[b.ShowTimeID]
		if !ok {
			return fmt.Errorf("active booking %s references unknown showtime %s", b.ID, b.ShowTimeID)
		}

		if err := st.Seats.Validate(b.Seats); err != nil {
			return fmt.Errorf("booking %s: %w", b.ID, err)
		}

		for _, seat := range b.Seats {
			if other, taken := claimed[st.ID][seat]; taken {
				return fmt.Errorf("seat %s of showtime %s held by bookings %s and %s", seat, st.ID, other, b.ID)
			}

			claimed[st.ID][seat] = b.ID
		}
	}

	for _, st := range s.showtimes {
		for i, occupied := range st.Seats.occupied {
			seat := Seat{Row: i / st.Seats.cols, Col: i % st.Seats.cols}
			_, held := claimed[st.ID][seat]
			if occupied != held {
				return fmt.Errorf("showtime %s seat %s occupancy disagrees with active bookings", st.ID, seat)
			}
		}
	}

	inHistory := make(map[string]bool, len(s.bookings))
	for _, u := range s.users {
		for _, id := range u.BookingIDs {
			b, ok := s.bookingIdx[id]
			if !ok || b.Username != u.Username {
				return fmt.Errorf("user %q history lists unknown booking %s", u.Username, id)
			}

			if inHistory[id] {
				return fmt.Errorf("user %q history lists booking %s twice", u.Username, id)
			}

			inHistory[id] = true
		}
	}

	for _, b := range s.bookings {
		if !inHistory[b.ID] {
			return fmt.Errorf("booking %s missing from the history of user %q", b.ID, b.Username)
		}
	}

	return nil
}
