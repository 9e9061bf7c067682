package catalog

import (
	"testing"

	"github.com/mmynk/bithub/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Amy", "amy"},
		{"  amy ", "amy"},
		{"AMY\t", "amy"},
		{"", ""},
		{"   ", ""},
		{"Mary Jane", "mary jane"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestResolveDisplayName(t *testing.T) {
	dir := NewDirectory([]models.User{
		{ID: "u1", DisplayName: "Amy", Email: "amy@example.com"},
		{ID: "u2", Email: "bo@example.com"},
		{ID: "u3"},
	})

	tests := []struct {
		name      string
		accountID string
		fallback  string
		want      string
	}{
		{"display name wins", "u1", "stale", "Amy"},
		{"email when no display name", "u2", "stale", "bo@example.com"},
		{"fallback when account has neither", "u3", "stale", "stale"},
		{"fallback when account missing", "nope", "stale", "stale"},
		{"unknown when nothing", "nope", "", "Unknown"},
		{"empty id uses fallback", "", "Bo", "Bo"},
		{"empty everything", "", "", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dir.ResolveDisplayName(tt.accountID, tt.fallback); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestOwnerName(t *testing.T) {
	dir := NewDirectory([]models.User{{ID: "u1", DisplayName: "Amy"}})

	tests := []struct {
		name string
		bit  models.Bit
		want string
	}{
		{"explicit author trimmed", models.Bit{Author: "  Bo ", AuthorID: "u1"}, "Bo"},
		{"resolved from id", models.Bit{AuthorID: "u1"}, "Amy"},
		{"unknown", models.Bit{}, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OwnerName(tt.bit, dir); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCurrentUserName(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		want string
	}{
		{"nil", nil, ""},
		{"display name", &models.User{DisplayName: "Amy", Email: "a@x.io"}, "Amy"},
		{"email local part", &models.User{Email: "bo.smith@x.io"}, "bo.smith"},
		{"email without at", &models.User{Email: "bo"}, "bo"},
		{"nothing", &models.User{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentUserName(tt.user); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIsOwnedBy(t *testing.T) {
	dir := NewDirectory([]models.User{
		{ID: "u1", DisplayName: "Amy"},
		{ID: "u2", DisplayName: "Bo"},
	})
	amy := &models.User{ID: "u1", DisplayName: "Amy"}

	tests := []struct {
		name    string
		bit     models.Bit
		current *models.User
		want    bool
	}{
		{"no current user", models.Bit{Author: "Amy"}, nil, false},
		{"same id and name", models.Bit{Author: "Amy", AuthorID: "u1"}, amy, true},
		{"name match without id", models.Bit{Author: " amy "}, amy, true},
		{"name match with other id", models.Bit{Author: "AMY", AuthorID: "u2"}, amy, true},
		{"id match but author renamed", models.Bit{Author: "Bo", AuthorID: "u1"}, amy, false},
		{"resolved through directory", models.Bit{AuthorID: "u1"}, amy, true},
		{"email local part", models.Bit{Author: "carol"}, &models.User{ID: "u9", Email: "Carol@x.io"}, true},
		{"both names empty", models.Bit{Author: "   "}, &models.User{ID: "u9"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOwnedBy(tt.bit, tt.current, dir); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
