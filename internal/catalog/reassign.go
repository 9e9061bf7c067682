package catalog

import (
	"fmt"
	"strings"

	"github.com/mmynk/bithub/internal/models"
)

// OwnerUpdate is the write produced by a reassignment.
type OwnerUpdate struct {
	BitID    string
	Author   string
	AuthorID string
}

// ResolveReassignment decides who bitID should be credited to. username is
// matched against account display names after normalization:
//   - no match credits the trimmed username with no account behind it
//   - one match credits that account
//   - more than one match is ErrAmbiguousUsername
func ResolveReassignment(bitID, username string, accounts []models.User, isAdmin bool) (OwnerUpdate, error) {
	if !isAdmin {
		return OwnerUpdate{}, ErrNotAuthorized
	}
	bitID = strings.TrimSpace(bitID)
	username = strings.TrimSpace(username)
	if bitID == "" || username == "" {
		return OwnerUpdate{}, fmt.Errorf("%w: bit id and username are required", ErrMissingInput)
	}

	want := Normalize(username)
	var matches []models.User
	for _, u := range accounts {
		if Normalize(u.DisplayName) == want {
			matches = append(matches, u)
		}
	}

	switch len(matches) {
	case 0:
		return OwnerUpdate{BitID: bitID, Author: username}, nil
	case 1:
		u := matches[0]
		return OwnerUpdate{
			BitID:    bitID,
			Author:   accountName(u),
			AuthorID: u.ID,
		}, nil
	default:
		return OwnerUpdate{}, fmt.Errorf("%w: %q matches %d accounts", ErrAmbiguousUsername, username, len(matches))
	}
}

func accountName(u models.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.Email != "" {
		return u.Email
	}
	return UnknownName
}
