package catalog

import (
	"fmt"
	"strings"

	"github.com/mmynk/bithub/internal/models"
)

// NewBit builds a new, unrated bit credited to author. Name and description
// are trimmed and required.
func NewBit(name, description string, author *models.User) (models.Bit, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return models.Bit{}, fmt.Errorf("%w: name and description are required", ErrMissingInput)
	}
	if author == nil {
		return models.Bit{}, ErrNotAuthorized
	}
	return models.Bit{
		Name:        name,
		Description: description,
		Author:      CurrentUserName(author),
		AuthorID:    author.ID,
		Ratings:     map[string]int{},
		Rating:      0,
	}, nil
}

// DisplayRating formats a bit's rating for display. Bits nobody has rated
// show "No ratings" rather than 0.0.
func DisplayRating(bit models.Bit) string {
	if len(bit.Ratings) == 0 {
		return "No ratings"
	}
	return fmt.Sprintf("%.1f", bit.Rating)
}
