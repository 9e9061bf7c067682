package catalog

import (
	"fmt"
	"sort"

	"github.com/mmynk/bithub/internal/models"
)

// SortMode selects the ordering of the leaderboard.
type SortMode int

const (
	// ByAverage orders by mean rating, then vote count.
	ByAverage SortMode = iota
	// ByVotes orders by vote count, then mean rating.
	ByVotes
)

func (m SortMode) String() string {
	switch m {
	case ByAverage:
		return "average"
	case ByVotes:
		return "votes"
	default:
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
}

// ParseSortMode maps a wire value to a SortMode. Empty means ByAverage.
func ParseSortMode(s string) (SortMode, error) {
	switch s {
	case "", "average":
		return ByAverage, nil
	case "votes":
		return ByVotes, nil
	default:
		return ByAverage, fmt.Errorf("unknown sort mode %q", s)
	}
}

// Rank returns a sorted copy of bits. Both keys are descending. Bits equal on
// both keys keep their input order.
func Rank(bits []models.Bit, mode SortMode) []models.Bit {
	ranked := make([]models.Bit, len(bits))
	copy(ranked, bits)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if mode == ByVotes {
			if a.Votes() != b.Votes() {
				return a.Votes() > b.Votes()
			}
			return a.Rating > b.Rating
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.Votes() > b.Votes()
	})
	return ranked
}
