package bingo

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
)

// RandomSource yields uniformly distributed integers in [0, n).
//
// Ticket contents must not be predictable by players, so production code uses
// SecureSource. Tests may inject a deterministic source.
type RandomSource interface {
	Intn(n int) int
}

type secureSource struct{}

// SecureSource returns a RandomSource backed by crypto/rand.
func SecureSource() RandomSource {
	return secureSource{}
}

func (secureSource) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("bingo: Intn called with bound %d", n))
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(fmt.Sprintf("bingo: reading crypto/rand: %v", err))
	}
	return int(v.Int64())
}

// randRange returns a random integer in [start, end).
func randRange(src RandomSource, start, end int) int {
	return start + src.Intn(end-start)
}

// window returns the integer bounds [ceil(start), ceil(start+width)).
func window(start, width float64) (int, int) {
	return int(math.Ceil(start)), int(math.Ceil(start + width))
}

// shuffle permutes items in place (Fisher-Yates).
func shuffle[T any](src RandomSource, items []T) {
	for i := len(items) - 1; i >= 1; i-- {
		j := src.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
