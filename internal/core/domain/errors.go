package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrSeatConflict     = errors.New("seat conflict")
	ErrAlreadyExists    = errors.New("already exists")
	ErrForbidden        = errors.New("forbidden")
	ErrBadCredentials   = errors.New("bad credentials")
	ErrCorrupt          = errors.New("corrupt state file")
	ErrStateAbsent      = errors.New("state file absent")
	ErrInvalidRelease   = errors.New("invalid release: seat already free")
	ErrInvalidSeat      = errors.New("invalid seat")
	ErrInvalidInput     = errors.New("invalid input")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
)

// SeatConflictError names the requested seats that were already occupied.
type SeatConflictError struct {
	Seats []Seat
}

func (e *SeatConflictError) Error() string {
	labels := make([]string, 0, len(e.Seats))
	for _, s := range e.Seats {
		labels = append(labels, s.String())
	}

	return fmt.Sprintf("seat conflict: %s already taken", strings.Join(labels, ", "))
}

func (e *SeatConflictError) Is(target error) bool {
	return target == ErrSeatConflict
}
