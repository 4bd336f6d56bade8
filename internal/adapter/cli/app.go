package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/srgjo27/movie_booking/internal/core/domain"
	"github.com/srgjo27/movie_booking/internal/core/services"
)

const startLayout = "2006-01-02 15:04"

var (
	errQuit    = errors.New("quit")
	ErrUnsaved = errors.New("change not saved to disk")
)

// App is the menu-driven front end. It only renders and forwards; every rule
// lives in the services.
type App struct {
	store    *services.Store
	catalog  *services.CatalogService
	bookings *services.BookingService
	accounts *services.AccountService

	in      *bufio.Scanner
	out     io.Writer
	log     *zap.Logger
	current *domain.User
}

func NewApp(store *services.Store, catalog *services.CatalogService, bookings *services.BookingService,
	accounts *services.AccountService, in io.Reader, out io.Writer, log *zap.Logger) *App {
	return &App{
		store:    store,
		catalog:  catalog,
		bookings: bookings,
		accounts: accounts,
		in:       bufio.NewScanner(in),
		out:      out,
		log:      log,
	}
}

// Run drives the menu loop until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	a.printf("Welcome to the Movie Ticket Booking System!\n")
	a.printf("Demo accounts: 'admin' (admin) or 'sudip' (user)\n")
	a.printf("Type 'popcorn' at any menu for a surprise!\n")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		a.printMenu()
		choice, ok := a.prompt("Enter your choice: ")
		if !ok {
			return nil
		}

		if strings.EqualFold(choice, "popcorn") {
			a.printf("You found the secret popcorn! Enjoy your snack while watching the movie!\n")
			continue
		}

		var err error
		if a.current == nil {
			err = a.guestMenu(ctx, choice)
		} else {
			err = a.userMenu(ctx, choice)
		}

		if errors.Is(err, errQuit) {
			a.printf("Goodbye!\n")
			return nil
		}

		if errors.Is(err, ErrUnsaved) {
			a.printf("Error: the last change could not be saved and exists only in memory.\n")
			a.printf("Stopping now so no further changes are lost. Check the data file and start again.\n")
			return err
		}

		if err != nil {
			a.printf("Error: %s\n", describe(err))
		}
	}
}

func (a *App) printMenu() {
	a.printf("\n==== MAIN MENU ====\n")
	if a.current == nil {
		a.printf("1. Login\n2. Register\n3. Browse Movies\n0. Exit\n")
		return
	}

	role := "USER"
	if a.current.IsAdmin() {
		role = "ADMIN"
	}
	a.printf("Logged in as %s (%s)\n", a.current.Username, role)
	a.printf("1. Browse Movies\n2. View Showtimes\n3. Book Tickets\n4. My Bookings\n5. Cancel Booking\n6. Logout\n")
	if a.current.IsAdmin() {
		a.printf("--- ADMIN OPTIONS ---\n")
		a.printf("7. Add Movie\n8. Remove Movie\n9. Add Showtime\n10. Remove Showtime\n11. View All Bookings\n")
	}
	a.printf("0. Exit\n")
}

func (a *App) guestMenu(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return a.login()
	case "2":
		return a.register(ctx)
	case "3":
		a.listMovies()
		return nil
	case "0":
		return errQuit
	default:
		a.printf("Invalid choice.\n")
		return nil
	}
}

func (a *App) userMenu(ctx context.Context, choice string) error {
	admin := a.current.IsAdmin()

	switch {
	case choice == "1":
		a.listMovies()
	case choice == "2":
		return a.showTimes()
	case choice == "3":
		return a.book(ctx)
	case choice == "4":
		return a.myBookings()
	case choice == "5":
		return a.cancel(ctx)
	case choice == "6":
		a.printf("Logged out %s.\n", a.current.Username)
		a.current = nil
	case choice == "7" && admin:
		return a.addMovie(ctx)
	case choice == "8" && admin:
		return a.removeMovie(ctx)
	case choice == "9" && admin:
		return a.addShowTime(ctx)
	case choice == "10" && admin:
		return a.removeShowTime(ctx)
	case choice == "11" && admin:
		a.printBookings(a.bookings.ListAll(), true)
	case choice == "0":
		return errQuit
	default:
		a.printf("Invalid choice.\n")
	}

	return nil
}

func (a *App) login() error {
	username, _ := a.prompt("Enter username: ")

	var password string
	if a.accounts.RequiresPassword(username) {
		password, _ = a.prompt("Enter password: ")
	}

	user, err := a.accounts.Authenticate(username, password)
	if err != nil {
		return err
	}

	a.current = user
	a.printf("Login successful! Loyalty points: %d\n", user.Points)

	return nil
}

func (a *App) register(ctx context.Context) error {
	username, _ := a.prompt("Enter username: ")
	email, _ := a.prompt("Enter email: ")

	user, err := a.accounts.Register(ctx, username, email)
	if err != nil {
		return err
	}

	a.printf("Registered %s. You can log in now.\n", user.Username)

	return a.save(ctx)
}

func (a *App) listMovies() {
	movies := a.catalog.ListMovies()
	if len(movies) == 0 {
		a.printf("No movies available.\n")
		return
	}

	a.printf("\nAVAILABLE MOVIES\n")
	for _, m := range movies {
		a.printf("%s  %s\n", m.ID, m.Title)
		a.printf("   Genre: %s | Duration: %d min | Rating: %s\n", m.Genre, m.DurationMin, m.Rating)
		a.printf("   Price: $%.2f per seat | Showtimes: %d\n", m.Price, len(m.ShowTimeIDs))
		if m.Description != "" {
			a.printf("   Fun fact: %s\n", m.Description)
		}
	}
}

func (a *App) showTimes() error {
	movieID, _ := a.prompt("Enter movie ID: ")

	showtimes, err := a.catalog.ListShowTimes(movieID)
	if err != nil {
		return err
	}

	if len(showtimes) == 0 {
		a.printf("No showtimes scheduled.\n")
		return nil
	}

	for _, st := range showtimes {
		a.printf("%s  %s  %s  (%d/%d seats free)\n",
			st.ID, st.StartsAt.Format(startLayout), st.Room, st.AvailableCount(), st.Seats.Capacity())
	}

	return nil
}

func (a *App) book(ctx context.Context) error {
	showtimeID, _ := a.prompt("Enter showtime ID: ")

	st, err := a.catalog.GetShowTime(showtimeID)
	if err != nil {
		return err
	}

	a.printf("%s", RenderSeatMap(st.Seats))

	input, _ := a.prompt("Seats (e.g. A1;B2), blank to go back: ")
	if input == "" {
		return nil
	}

	seats, err := domain.ParseSeats(input)
	if err != nil {
		return err
	}

	booking, err := a.bookings.Book(ctx, a.current.Username, st.ID, seats)
	if err != nil {
		return err
	}

	a.printf("Booking confirmed! ID %s, code %s\n", booking.ID, booking.Code)
	a.printf("Seats: %s | Total: $%.2f | Points earned: %d\n",
		domain.SeatLabels(booking.Seats), booking.TotalAmount, booking.AwardedPoints())
	if booking.LuckyDraw {
		a.printf("Lucky Draw! You won %d bonus points!\n", booking.BonusPoints)
	}

	return a.save(ctx)
}

func (a *App) myBookings() error {
	bookings, err := a.bookings.ListForUser(a.current.Username)
	if err != nil {
		return err
	}

	balance, err := a.accounts.Balance(a.current.Username)
	if err != nil {
		return err
	}

	a.printBookings(bookings, false)
	a.printf("Loyalty points balance: %d\n", balance)

	return nil
}

func (a *App) cancel(ctx context.Context) error {
	bookingID, _ := a.prompt("Enter booking ID to cancel: ")

	booking, err := a.bookings.Cancel(ctx, a.current.Username, bookingID)
	if err != nil {
		return err
	}

	a.printf("Booking %s cancelled, seats %s released.\n", booking.ID, domain.SeatLabels(booking.Seats))

	return a.save(ctx)
}

func (a *App) addMovie(ctx context.Context) error {
	title, _ := a.prompt("Title: ")
	genre, _ := a.prompt("Genre: ")
	duration, err := a.promptInt("Duration (minutes): ")
	if err != nil {
		return err
	}
	rating, _ := a.prompt("Rating: ")
	description, _ := a.prompt("Description: ")
	priceText, _ := a.prompt("Ticket price: $")

	price := domain.DefaultSeatPrice
	if priceText != "" {
		if price, err = strconv.ParseFloat(priceText, 64); err != nil {
			return fmt.Errorf("%w: price %q", domain.ErrInvalidInput, priceText)
		}
	}

	movie, err := a.catalog.AddMovie(ctx, services.NewMovie{
		Title:       title,
		Genre:       genre,
		DurationMin: duration,
		Rating:      rating,
		Description: description,
		Price:       price,
	})
	if err != nil {
		return err
	}

	a.printf("Movie added with ID %s\n", movie.ID)

	return a.save(ctx)
}

func (a *App) removeMovie(ctx context.Context) error {
	movieID, _ := a.prompt("Movie ID to remove: ")

	if err := a.catalog.RemoveMovie(ctx, movieID); err != nil {
		return err
	}

	a.printf("Movie %s removed.\n", movieID)

	return a.save(ctx)
}

func (a *App) addShowTime(ctx context.Context) error {
	movieID, _ := a.prompt("Movie ID: ")
	startText, _ := a.prompt("Start (YYYY-MM-DD HH:MM): ")
	startsAt, err := time.ParseInLocation(startLayout, startText, time.Local)
	if err != nil {
		return fmt.Errorf("%w: start time %q", domain.ErrInvalidInput, startText)
	}

	room, _ := a.prompt("Theater: ")
	rows, err := a.promptInt("Rows (blank for 5): ")
	if err != nil {
		return err
	}
	cols, err := a.promptInt("Seats per row (blank for 10): ")
	if err != nil {
		return err
	}

	if rows == 0 {
		rows = services.DefaultRows
	}
	if cols == 0 {
		cols = services.DefaultCols
	}

	st, err := a.catalog.AddShowTime(ctx, services.NewShowTime{
		MovieID:  movieID,
		StartsAt: startsAt,
		Room:     room,
		Rows:     rows,
		Cols:     cols,
	})
	if err != nil {
		return err
	}

	a.printf("Showtime added with ID %s\n", st.ID)

	return a.save(ctx)
}

func (a *App) removeShowTime(ctx context.Context) error {
	showtimeID, _ := a.prompt("Showtime ID to remove: ")

	if err := a.catalog.RemoveShowTime(ctx, showtimeID); err != nil {
		return err
	}

	a.printf("Showtime %s removed.\n", showtimeID)

	return a.save(ctx)
}

func (a *App) printBookings(bookings []domain.Booking, withUser bool) {
	if len(bookings) == 0 {
		a.printf("No bookings found.\n")
		return
	}

	for _, b := range bookings {
		a.printf("%s  [%s]  %s  showtime %s\n", b.ID, b.Status, b.MovieTitle, b.ShowTimeID)
		if withUser {
			a.printf("   User: %s\n", b.Username)
		}
		a.printf("   Seats: %s | Total: $%.2f | Booked: %s\n",
			domain.SeatLabels(b.Seats), b.TotalAmount, b.CreatedAt.Format(time.DateTime))
		a.printf("   Loyalty points earned: %d\n", b.AwardedPoints())
	}
}

func (a *App) save(ctx context.Context) error {
	if err := a.store.Save(ctx); err != nil {
		a.log.Error("save failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnsaved, err)
	}

	return nil
}

func (a *App) prompt(label string) (string, bool) {
	a.printf("%s", label)
	if !a.in.Scan() {
		return "", false
	}

	return strings.TrimSpace(a.in.Text()), true
}

func (a *App) promptInt(label string) (int, error) {
	text, _ := a.prompt(label)
	if text == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, text)
	}

	return n, nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
