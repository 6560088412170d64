// Package primes provides the ascending table of prime numbers used to give
// every song in a game a distinct numeric identity.
package primes

// TableSize is the number of primes in the table, and therefore the largest
// number of songs a single game can hold.
const TableSize = 1000

// sieveLimit is large enough to contain the first TableSize primes (the
// 1000th prime is 7919).
const sieveLimit = 8000

var table = sieve(sieveLimit, TableSize)

// At returns the prime at index i. It panics if i is out of range.
func At(i int) uint64 {
	return table[i]
}

// Len returns the number of primes in the table.
func Len() int {
	return len(table)
}

func sieve(limit, count int) []uint64 {
	composite := make([]bool, limit+1)
	out := make([]uint64, 0, count)
	for n := 2; n <= limit && len(out) < count; n++ {
		if composite[n] {
			continue
		}
		out = append(out, uint64(n))
		for m := n * n; m <= limit; m += n {
			composite[m] = true
		}
	}
	return out
}
