package services

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/srgjo27/movie_booking/internal/core/domain"
)

type SeedOptions struct {
	AdminPassword string
	BcryptCost    int
	Now           time.Time
}

var sampleMovies = []domain.Movie{
	{Title: "Avengers: Endgame", Genre: "Action/Adventure", DurationMin: 181, Rating: "PG-13",
		Description: "The Avengers assemble once more to reverse Thanos' actions.", Price: 15.00},
	{Title: "The Dark Knight", Genre: "Action/Crime", DurationMin: 152, Rating: "PG-13",
		Description: "Batman faces the Joker in this epic crime thriller.", Price: 12.50},
	{Title: "Inception", Genre: "Sci-Fi/Thriller", DurationMin: 148, Rating: "PG-13",
		Description: "A thief who steals secrets through dream-sharing technology.", Price: 13.00},
	{Title: "Parasite", Genre: "Thriller/Drama", DurationMin: 132, Rating: "R",
		Description: "A poor family schemes to become employed by a wealthy family.", Price: 11.50},
}

var (
	sampleRooms = []string{"Theater A", "Theater B", "Theater C"}
	sampleSlots = []time.Duration{10 * time.Hour, 13*time.Hour + 30*time.Minute, 16 * time.Hour}
)

const seedDays = 3

// NewSeedState builds the first-run catalog: four movies with three
// showtimes a day for three days, the admin account and one demo user.
func NewSeedState(opts SeedOptions) (*domain.State, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	state := domain.NewState()

	hash, err := HashPassword(opts.AdminPassword, opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	users := []*domain.User{
		{Username: "admin", Email: "admin@cinema.com", PasswordHash: hash, Role: domain.RoleAdmin},
		{Username: "sudip", Email: "sudip@email.com", Role: domain.RoleUser},
	}

	for _, u := range users {
		if err := state.PutUser(u); err != nil {
			return nil, err
		}
	}

	y, mo, d := opts.Now.Date()
	today := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)

	for _, sample := range sampleMovies {
		movie := sample.Clone()
		movie.ID = state.IDs.Next(domain.KindMovie)
		if err := state.PutMovie(&movie); err != nil {
			return nil, err
		}

		for day := 0; day < seedDays; day++ {
			for j, slot := range sampleSlots {
				seats, err := domain.NewSeatMap(DefaultRows, DefaultCols)
				if err != nil {
					return nil, err
				}

				st := &domain.ShowTime{
					ID:       state.IDs.Next(domain.KindShowTime),
					MovieID:  movie.ID,
					StartsAt: today.AddDate(0, 0, day).Add(slot),
					Room:     sampleRooms[j%len(sampleRooms)],
					Seats:    seats,
				}

				if err := state.PutShowTime(st); err != nil {
					return nil, err
				}
			}
		}
	}

	return state, nil
}
