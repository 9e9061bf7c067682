package catalog

import (
	"maps"

	"github.com/mmynk/bithub/internal/models"
)

const (
	MinScore = 1
	MaxScore = 5
)

// RatingUpdate is the write produced by a rating: the bit's new ratings map and
// the mean recomputed from it.
type RatingUpdate struct {
	BitID   string
	Ratings map[string]int
	Rating  float64
}

// ValidScore reports whether score is within [MinScore, MaxScore].
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// ApplyRating records score for raterID on a copy of bit's ratings and
// recomputes the mean. A rater's earlier score is replaced, not added to.
// The caller must ensure ValidScore(score); bit is not modified.
func ApplyRating(bit models.Bit, raterID string, score int) RatingUpdate {
	ratings := make(map[string]int, len(bit.Ratings)+1)
	maps.Copy(ratings, bit.Ratings)
	ratings[raterID] = score

	return RatingUpdate{
		BitID:   bit.ID,
		Ratings: ratings,
		Rating:  Mean(ratings),
	}
}

// Mean returns the arithmetic mean of the scores, or 0 for no scores.
func Mean(ratings map[string]int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, score := range ratings {
		sum += score
	}
	return float64(sum) / float64(len(ratings))
}
