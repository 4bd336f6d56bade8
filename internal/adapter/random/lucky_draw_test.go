package random_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srgjo27/movie_booking/internal/adapter/random"
)

func TestLuckyDraw(t *testing.T) {
	never := random.NewLuckyDraw(0, 1)
	always := random.NewLuckyDraw(1, 1)

	for i := 0; i < 100; i++ {
		assert.False(t, never.Draw())
		assert.True(t, always.Draw())
	}
}

func TestLuckyDraw_RoughlyOneInN(t *testing.T) {
	draw := random.NewLuckyDraw(5, 42)

	wins := 0
	for i := 0; i < 10000; i++ {
		if draw.Draw() {
			wins++
		}
	}

	assert.InDelta(t, 2000, wins, 300)
}
