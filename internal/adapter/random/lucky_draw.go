package random

import "math/rand/v2"

// LuckyDraw wins once in Odds draws on average.
type LuckyDraw struct {
	Odds int
	rng  *rand.Rand
}

func NewLuckyDraw(odds int, seed uint64) *LuckyDraw {
	return &LuckyDraw{
		Odds: odds,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (d *LuckyDraw) Draw() bool {
	if d.Odds <= 0 {
		return false
	}

	return d.rng.IntN(d.Odds) == 0
}
