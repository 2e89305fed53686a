// Package draw selects drawing winners from a recorded seed. The permutation
// only depends on the seed and the ticket count, so a completed drawing can be
// replayed from its audit record.
package draw

import (
	"math/rand/v2"

	"golang.org/x/exp/slices"
)

// Permutation returns a Fisher-Yates shuffle of [0, n) driven by a ChaCha8
// stream. Bounded integers use rejection sampling on raw 64 bit outputs so the
// sequence is defined by the seed alone.
func Permutation(seed [32]byte, n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	src := rand.NewChaCha8(seed)
	for i := n - 1; i > 0; i-- {
		j := int(uniform(src, uint64(i+1)))
		perm[i], perm[j] = perm[j], perm[i]
	}

	return perm
}

func uniform(src *rand.ChaCha8, bound uint64) uint64 {
	threshold := -bound % bound
	for {
		x := src.Uint64()
		if x >= threshold {
			return x % bound
		}
	}
}

type Ticket struct {
	ID     string
	Number int
}

type Prize struct {
	ID       string
	Rank     int
	Quantity int
}

type Winner struct {
	TicketID     string
	TicketNumber int
	PrizeID      string
	PrizeRank    int
}

// SelectWinners orders tickets by number, shuffles them with seed and hands
// prize units out in rank order. A ticket wins at most once; prize units left
// when tickets run out stay unawarded.
func SelectWinners(seed [32]byte, tickets []Ticket, prizes []Prize) []Winner {
	pool := append([]Ticket(nil), tickets...)
	slices.SortFunc(pool, func(a, b Ticket) bool { return a.Number < b.Number })

	ranked := append([]Prize(nil), prizes...)
	slices.SortStableFunc(ranked, func(a, b Prize) bool {
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.ID < b.ID
	})

	perm := Permutation(seed, len(pool))
	winners := []Winner{}
	next := 0
	for _, prize := range ranked {
		for unit := 0; unit < prize.Quantity; unit++ {
			if next >= len(perm) {
				return winners
			}

			ticket := pool[perm[next]]
			next++
			winners = append(winners, Winner{
				TicketID:     ticket.ID,
				TicketNumber: ticket.Number,
				PrizeID:      prize.ID,
				PrizeRank:    prize.Rank,
			})
		}
	}

	return winners
}
