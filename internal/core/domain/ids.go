package domain

import (
	"strconv"
	"strings"
)

type IDKind string

const (
	KindMovie    IDKind = "movie"
	KindShowTime IDKind = "showtime"
	KindBooking  IDKind = "booking"
)

var idPrefixes = map[IDKind]string{
	KindMovie:    "M",
	KindShowTime: "S",
	KindBooking:  "B",
}

// IDAllocator hands out monotonic, never reused identifiers per kind. Its
// high-water marks are persisted with the rest of the state.
type IDAllocator struct {
	counters map[IDKind]int64
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{counters: map[IDKind]int64{
		KindMovie:    0,
		KindShowTime: 0,
		KindBooking:  0,
	}}
}

func (a *IDAllocator) Next(kind IDKind) string {
	a.counters[kind]++

	return idPrefixes[kind] + strconv.FormatInt(a.counters[kind], 10)
}

func (a *IDAllocator) HighWater(kind IDKind) int64 {
	return a.counters[kind]
}

// Restore sets the high-water mark, never lowering it.
func (a *IDAllocator) Restore(kind IDKind, n int64) {
	if n > a.counters[kind] {
		a.counters[kind] = n
	}
}

// Observe raises the high-water mark to cover an identifier that already
// exists, so it can never be issued again. Foreign identifiers are ignored.
func (a *IDAllocator) Observe(kind IDKind, id string) {
	prefix := idPrefixes[kind]
	if !strings.HasPrefix(id, prefix) {
		return
	}

	n, err := strconv.ParseInt(strings.TrimPrefix(id, prefix), 10, 64)
	if err != nil {
		return
	}

	a.Restore(kind, n)
}

// Counters returns a copy of every high-water mark.
func (a *IDAllocator) Counters() map[IDKind]int64 {
	out := make(map[IDKind]int64, len(a.counters))
	for k, v := range a.counters {
		out[k] = v
	}

	return out
}
