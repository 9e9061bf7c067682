package models

// Bit represents a short user-submitted item that other users rate.
type Bit struct {
	// ID is the unique identifier for the bit (UUID format), assigned by the store.
	ID string

	// Name is the title of the bit. Never empty.
	Name string

	// Description is the body of the bit. Never empty.
	Description string

	// Author is the display name the bit is credited to.
	// May be stale relative to the account, or empty.
	Author string

	// AuthorID is the ID of the account the bit is credited to.
	// Empty when the bit was reassigned to a bare name.
	AuthorID string

	// Ratings maps rater user ID to a score in [1, 5]. One entry per rater.
	Ratings map[string]int

	// Rating is the mean of Ratings, recomputed on every rating write.
	// Zero when Ratings is empty.
	Rating float64

	// CreatedAt is the Unix timestamp when the bit was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last write to the bit.
	UpdatedAt int64
}

// Votes returns the number of distinct raters.
func (b Bit) Votes() int {
	return len(b.Ratings)
}
