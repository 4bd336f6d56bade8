package domain

import "time"

type BookingStatus string

const (
	BookingActive    BookingStatus = "ACTIVE"
	BookingCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID          string
	Code        string
	Username    string
	ShowTimeID  string
	MovieTitle  string
	Seats       []Seat
	TotalAmount float64
	Points      int
	BonusPoints int
	LuckyDraw   bool
	Status      BookingStatus
	CreatedAt   time.Time
	CancelledAt *time.Time
}

func (b *Booking) IsActive() bool {
	return b.Status == BookingActive
}

// AwardedPoints is the base award plus any lucky draw bonus.
func (b *Booking) AwardedPoints() int {
	return b.Points + b.BonusPoints
}

func (b *Booking) Clone() Booking {
	out := *b
	out.Seats = append([]Seat(nil), b.Seats...)
	if b.CancelledAt != nil {
		t := *b.CancelledAt
		out.CancelledAt = &t
	}

	return out
}
