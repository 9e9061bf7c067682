package catalog

import "github.com/mmynk/bithub/internal/models"

// IsOwnedBy reports whether bit is credited to current. Matching is by
// normalized name, not by ID, so a bit reassigned to the user's name counts
// even when its AuthorID is empty or different.
// A name that normalizes to "" never matches.
func IsOwnedBy(bit models.Bit, current *models.User, dir Directory) bool {
	if current == nil {
		return false
	}
	mine := Normalize(CurrentUserName(current))
	if mine == "" {
		return false
	}
	return Normalize(OwnerName(bit, dir)) == mine
}
