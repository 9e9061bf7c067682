package auth

import "strings"

// AdminList decides which accounts get the administrator signal at login.
type AdminList struct {
	emails map[string]struct{}
}

// NewAdminList builds an AdminList from emails. Matching ignores case and
// surrounding whitespace; blank entries are skipped.
func NewAdminList(emails []string) AdminList {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			set[e] = struct{}{}
		}
	}
	return AdminList{emails: set}
}

// IsAdmin reports whether email belongs to an administrator.
func (l AdminList) IsAdmin(email string) bool {
	_, ok := l.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}
