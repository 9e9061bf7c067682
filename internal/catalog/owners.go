package catalog

import (
	"sort"

	"github.com/mmynk/bithub/internal/models"
)

// TopOwners is how many entries each owner board holds.
const TopOwners = 5

// OwnerAggregate summarizes the bits credited to one normalized owner name.
type OwnerAggregate struct {
	// Key is the normalized owner name the bits were grouped by.
	Key string
	// Name is the owner name as first seen, for display.
	Name  string
	Count int
	// RatingSum is the sum of each bit's mean rating.
	RatingSum float64
}

// Avg returns the mean of the per-bit means, or 0 for an empty group.
func (a OwnerAggregate) Avg() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.RatingSum / float64(a.Count)
}

// OwnerBoards holds the two "Top Bitters" views.
type OwnerBoards struct {
	TopByCount   []OwnerAggregate
	TopByAverage []OwnerAggregate
}

// AggregateByOwner groups bits by normalized owner name and ranks the groups
// by bit count and by average rating, keeping the top TopOwners of each.
func AggregateByOwner(bits []models.Bit, dir Directory) OwnerBoards {
	groups := groupByOwner(bits, dir)

	byCount := make([]OwnerAggregate, len(groups))
	copy(byCount, groups)
	sort.SliceStable(byCount, func(i, j int) bool {
		if byCount[i].Count != byCount[j].Count {
			return byCount[i].Count > byCount[j].Count
		}
		return byCount[i].Avg() > byCount[j].Avg()
	})

	byAvg := make([]OwnerAggregate, 0, len(groups))
	for _, g := range groups {
		if g.Count > 0 {
			byAvg = append(byAvg, g)
		}
	}
	sort.SliceStable(byAvg, func(i, j int) bool {
		if byAvg[i].Avg() != byAvg[j].Avg() {
			return byAvg[i].Avg() > byAvg[j].Avg()
		}
		return byAvg[i].Count > byAvg[j].Count
	})

	return OwnerBoards{
		TopByCount:   truncate(byCount, TopOwners),
		TopByAverage: truncate(byAvg, TopOwners),
	}
}

// groupByOwner returns one aggregate per normalized owner name, in the order
// each name was first seen.
func groupByOwner(bits []models.Bit, dir Directory) []OwnerAggregate {
	index := make(map[string]int)
	var groups []OwnerAggregate

	for _, bit := range bits {
		name := OwnerName(bit, dir)
		key := Normalize(name)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, OwnerAggregate{Key: key, Name: name})
		}
		groups[i].Count++
		groups[i].RatingSum += bit.Rating
	}
	return groups
}

func truncate(aggs []OwnerAggregate, n int) []OwnerAggregate {
	if len(aggs) > n {
		return aggs[:n]
	}
	return aggs
}
