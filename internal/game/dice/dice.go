// Package dice implements seeded, injectable dice rolling for game resolution.
//
// All randomness in the engine flows through a Roller passed explicitly into
// every resolution call. Replaying the same seed against the same declared
// actions reproduces an identical event sequence and final state.
package dice

import (
	"errors"
	"math/rand"
)

// ErrExhausted indicates a scripted roller ran out of queued values.
var ErrExhausted = errors.New("scripted roller exhausted")

// Roller produces dice rolls and uniform selections for game resolution.
// Implementations must be deterministic with respect to their construction
// seed: the same seed and the same call sequence yield the same values.
type Roller interface {
	// D6 rolls one six-sided die (1-6).
	D6() int
	// TwoD6 rolls two six-sided dice and returns their sum (2-12).
	TwoD6() int
	// Pick returns a uniform value in [0, n). Used for critical-slot
	// selection and fall facing.
	Pick(n int) int
}

// SeededRoller is a Roller backed by a seeded pseudo-random source.
type SeededRoller struct {
	seed int64
	rng  *rand.Rand
}

// NewRoller creates a deterministic roller from the provided seed.
func NewRoller(seed int64) *SeededRoller {
	return &SeededRoller{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the roller was constructed with.
func (r *SeededRoller) Seed() int64 { return r.seed }

// D6 rolls one six-sided die.
func (r *SeededRoller) D6() int { return r.rng.Intn(6) + 1 }

// TwoD6 rolls two six-sided dice and returns their sum.
func (r *SeededRoller) TwoD6() int { return r.D6() + r.D6() }

// Pick returns a uniform value in [0, n).
func (r *SeededRoller) Pick(n int) int { return r.rng.Intn(n) }

// Script is a Roller that replays a fixed queue of values. It exists for
// tests that need exact dice outcomes; D6 and TwoD6 both consume one queued
// value, and Pick consumes one value taken modulo n.
type Script struct {
	values []int
	next   int
}

// NewScript creates a scripted roller from the provided values.
func NewScript(values ...int) *Script {
	return &Script{values: values}
}

func (s *Script) take() int {
	if s.next >= len(s.values) {
		panic(ErrExhausted)
	}
	v := s.values[s.next]
	s.next++
	return v
}

// D6 returns the next queued value.
func (s *Script) D6() int { return s.take() }

// TwoD6 returns the next queued value.
func (s *Script) TwoD6() int { return s.take() }

// Pick returns the next queued value modulo n.
func (s *Script) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return s.take() % n
}

// Remaining reports how many scripted values are left unconsumed.
func (s *Script) Remaining() int { return len(s.values) - s.next }
