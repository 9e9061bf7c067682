package catalog

import (
	"strings"

	"github.com/mmynk/bithub/internal/models"
)

// UnknownName is shown when no name can be resolved for an owner.
const UnknownName = "Unknown"

// Normalize returns the comparison key for a name: trimmed and lower-cased.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Directory is an account snapshot indexed by user ID.
type Directory struct {
	byID  map[string]models.User
	users []models.User
}

// NewDirectory indexes users by ID. Later duplicates win.
func NewDirectory(users []models.User) Directory {
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return Directory{byID: byID, users: users}
}

// Users returns the snapshot in its original order.
func (d Directory) Users() []models.User {
	return d.users
}

// ResolveDisplayName returns the display name of accountID, else its email,
// else fallback, else UnknownName.
func (d Directory) ResolveDisplayName(accountID, fallback string) string {
	if u, ok := d.byID[accountID]; ok && accountID != "" {
		if u.DisplayName != "" {
			return u.DisplayName
		}
		if u.Email != "" {
			return u.Email
		}
	}
	if fallback != "" {
		return fallback
	}
	return UnknownName
}

// OwnerName returns the name a bit is credited to: the explicit author text if
// non-blank, otherwise the name resolved from AuthorID.
func OwnerName(bit models.Bit, dir Directory) string {
	if author := strings.TrimSpace(bit.Author); author != "" {
		return author
	}
	return dir.ResolveDisplayName(bit.AuthorID, bit.Author)
}

// CurrentUserName returns the user's display name, else the local part of
// their email, else "".
func CurrentUserName(user *models.User) string {
	if user == nil {
		return ""
	}
	if user.DisplayName != "" {
		return user.DisplayName
	}
	return emailLocalPart(user.Email)
}

func emailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
