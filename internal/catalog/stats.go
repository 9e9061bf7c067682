package catalog

import "github.com/mmynk/bithub/internal/models"

// Stats summarizes a set of bits.
type Stats struct {
	Bits int
	// Average is the mean of the bits' ratings. Only meaningful when HasAverage.
	Average    float64
	HasAverage bool
	// RatingsGiven counts bits the user has scored. Zero for global stats.
	RatingsGiven int
	// Authors counts distinct author IDs. Zero for user stats.
	Authors int
}

// UserStats summarizes the bits owned by current and the ratings they gave.
func UserStats(bits []models.Bit, current *models.User, dir Directory) Stats {
	var stats Stats
	if current == nil {
		return stats
	}

	var sum float64
	for _, bit := range bits {
		if IsOwnedBy(bit, current, dir) {
			stats.Bits++
			sum += bit.Rating
		}
		if _, ok := bit.Ratings[current.ID]; ok {
			stats.RatingsGiven++
		}
	}
	if stats.Bits > 0 {
		stats.Average = sum / float64(stats.Bits)
		stats.HasAverage = true
	}
	return stats
}

// GlobalStats summarizes all bits. Bits with no author ID count as one author.
func GlobalStats(bits []models.Bit) Stats {
	stats := Stats{Bits: len(bits)}
	if len(bits) == 0 {
		return stats
	}

	authors := make(map[string]struct{})
	var sum float64
	for _, bit := range bits {
		sum += bit.Rating
		authors[bit.AuthorID] = struct{}{}
	}
	stats.Average = sum / float64(len(bits))
	stats.HasAverage = true
	stats.Authors = len(authors)
	return stats
}
