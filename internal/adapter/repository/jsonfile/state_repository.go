package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/srgjo27/movie_booking/internal/core/domain"
)

const formatVersion = 1

type fileState struct {
	Version   int              `json:"version"`
	Counters  map[string]int64 `json:"counters"`
	Movies    []movieRecord    `json:"movies"`
	ShowTimes []showTimeRecord `json:"showtimes"`
	Bookings  []bookingRecord  `json:"bookings"`
	Users     []userRecord     `json:"users"`
}

type movieRecord struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	DurationMin int      `json:"duration_min"`
	Rating      string   `json:"rating"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ShowTimeIDs []string `json:"showtime_ids"`
}

type showTimeRecord struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movie_id"`
	StartsAt  time.Time `json:"starts_at"`
	Room      string    `json:"room"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	Occupancy []bool    `json:"occupancy"`
}

type bookingRecord struct {
	ID          string        `json:"id"`
	Code        string        `json:"code"`
	Username    string        `json:"username"`
	ShowTimeID  string        `json:"showtime_id"`
	MovieTitle  string        `json:"movie_title"`
	Seats       []domain.Seat `json:"seats"`
	TotalAmount float64       `json:"total_amount"`
	Points      int           `json:"points"`
	BonusPoints int           `json:"bonus_points"`
	LuckyDraw   bool          `json:"lucky_draw"`
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`
}

type userRecord struct {
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"password_hash,omitempty"`
	Role         string   `json:"role"`
	Points       int      `json:"points"`
	BookingIDs   []string `json:"booking_ids"`
}

// Repository persists the whole booking state as one JSON document.
type Repository struct {
	path string
}

func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Load(ctx context.Context) (*domain.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrStateAbsent
		}

		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	return Decode(data)
}

// Save writes to a temporary file next to the target and renames it into
// place, so readers never see a partial document.
func (r *Repository) Save(ctx context.Context, state *domain.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(state)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}

	return nil
}

// Encode renders the state deterministically: the same state always yields
// the same bytes.
func Encode(state *domain.State) ([]byte, error) {
	fsState := fileState{
		Version:   formatVersion,
		Counters:  make(map[string]int64),
		Movies:    []movieRecord{},
		ShowTimes: []showTimeRecord{},
		Bookings:  []bookingRecord{},
		Users:     []userRecord{},
	}

	for kind, n := range state.IDs.Counters() {
		fsState.Counters[string(kind)] = n
	}

	for _, m := range state.Movies() {
		fsState.Movies = append(fsState.Movies, movieRecord{
			ID:          m.ID,
			Title:       m.Title,
			Genre:       m.Genre,
			DurationMin: m.DurationMin,
			Rating:      m.Rating,
			Description: m.Description,
			Price:       m.Price,
			ShowTimeIDs: nonNil(m.ShowTimeIDs),
		})
	}

	for _, st := range state.ShowTimes() {
		fsState.ShowTimes = append(fsState.ShowTimes, showTimeRecord{
			ID:        st.ID,
			MovieID:   st.MovieID,
			StartsAt:  st.StartsAt,
			Room:      st.Room,
			Rows:      st.Seats.Rows(),
			Cols:      st.Seats.Cols(),
			Occupancy: st.Seats.Occupancy(),
		})
	}

	for _, b := range state.Bookings() {
		fsState.Bookings = append(fsState.Bookings, bookingRecord{
			ID:          b.ID,
			Code:        b.Code,
			Username:    b.Username,
			ShowTimeID:  b.ShowTimeID,
			MovieTitle:  b.MovieTitle,
			Seats:       b.Seats,
			TotalAmount: b.TotalAmount,
			Points:      b.Points,
			BonusPoints: b.BonusPoints,
			LuckyDraw:   b.LuckyDraw,
			Status:      string(b.Status),
			CreatedAt:   b.CreatedAt,
			CancelledAt: b.CancelledAt,
		})
	}

	for _, u := range state.Users() {
		fsState.Users = append(fsState.Users, userRecord{
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Role:         string(u.Role),
			Points:       u.Points,
			BookingIDs:   nonNil(u.BookingIDs),
		})
	}

	data, err := json.MarshalIndent(fsState, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}

	return append(data, '\n'), nil
}

// Decode parses and validates a state document. Any shape or integrity
// problem is reported as domain.ErrCorrupt.
func Decode(data []byte) (*domain.State, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var fsState fileState
	if err := dec.Decode(&fsState); err != nil {
		return nil, corrupt("parse: %v", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, corrupt("trailing data after document")
	}

	if fsState.Version != formatVersion {
		return nil, corrupt("unsupported format version %d", fsState.Version)
	}

	state := domain.NewState()

	for _, rec := range fsState.Users {
		role := domain.Role(rec.Role)
		if role != domain.RoleAdmin && role != domain.RoleUser {
			return nil, corrupt("user %q has unknown role %q", rec.Username, rec.Role)
		}

		if rec.Username == "" {
			return nil, corrupt("user with empty username")
		}

		user := &domain.User{
			Username:     rec.Username,
			Email:        rec.Email,
			PasswordHash: rec.PasswordHash,
			Role:         role,
			Points:       rec.Points,
			BookingIDs:   rec.BookingIDs,
		}

		if err := state.PutUser(user); err != nil {
			return nil, corrupt("%v", err)
		}
	}

	for _, rec := range fsState.Movies {
		if rec.ID == "" {
			return nil, corrupt("movie with empty id")
		}

		movie := &domain.Movie{
			ID:          rec.ID,
			Title:       rec.Title,
			Genre:       rec.Genre,
			DurationMin: rec.DurationMin,
			Rating:      rec.Rating,
			Description: rec.Description,
			Price:       rec.Price,
		}

		if err := state.PutMovie(movie); err != nil {
			return nil, corrupt("%v", err)
		}
	}

	for _, rec := range fsState.ShowTimes {
		seats, err := domain.RestoreSeatMap(rec.Rows, rec.Cols, rec.Occupancy)
		if err != nil {
			return nil, corrupt("showtime %s: %v", rec.ID, err)
		}

		st := &domain.ShowTime{
			ID:       rec.ID,
			MovieID:  rec.MovieID,
			StartsAt: rec.StartsAt,
			Room:     rec.Room,
			Seats:    seats,
		}

		if err := state.PutShowTime(st); err != nil {
			return nil, corrupt("showtime %s: %v", rec.ID, err)
		}
	}

	// Showtime order per movie comes from the movie record, not file order.
	for _, rec := range fsState.Movies {
		movie, _ := state.Movie(rec.ID)
		if len(rec.ShowTimeIDs) != len(movie.ShowTimeIDs) {
			return nil, corrupt("movie %s lists %d showtimes, file holds %d", rec.ID, len(rec.ShowTimeIDs), len(movie.ShowTimeIDs))
		}

		movie.ShowTimeIDs = append([]string(nil), rec.ShowTimeIDs...)
	}

	for _, rec := range fsState.Bookings {
		booking := &domain.Booking{
			ID:          rec.ID,
			Code:        rec.Code,
			Username:    rec.Username,
			ShowTimeID:  rec.ShowTimeID,
			MovieTitle:  rec.MovieTitle,
			Seats:       rec.Seats,
			TotalAmount: rec.TotalAmount,
			Points:      rec.Points,
			BonusPoints: rec.BonusPoints,
			LuckyDraw:   rec.LuckyDraw,
			Status:      domain.BookingStatus(rec.Status),
			CreatedAt:   rec.CreatedAt,
			CancelledAt: rec.CancelledAt,
		}

		if err := state.PutBooking(booking); err != nil {
			return nil, corrupt("%v", err)
		}
	}

	for kind, n := range fsState.Counters {
		switch k := domain.IDKind(kind); k {
		case domain.KindMovie, domain.KindShowTime, domain.KindBooking:
			state.IDs.Restore(k, n)
		default:
			return nil, corrupt("unknown counter %q", kind)
		}
	}

	if err := state.CheckIntegrity(); err != nil {
		return nil, corrupt("%v", err)
	}

	return state, nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrCorrupt, fmt.Sprintf(format, args...))
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}

	return ids
}
