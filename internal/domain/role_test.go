package domain

import (
	"testing"

	"pgregory.net/rapid"
)

func TestNewRole(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Role
		wantErr bool
	}{
		{name: "admin", value: "admin", want: RoleAdmin},
		{name: "organizer", value: "organizer", want: RoleOrganizer},
		{name: "coach", value: "coach", want: RoleCoach},
		{name: "player", value: "player", want: RolePlayer},
		{name: "viewer", value: "viewer", want: RoleViewer},
		{name: "wrong case", value: "Admin", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "unknown", value: "referee", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRole(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewRole(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NewRole(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestRolesAreKnown(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := rapid.SampledFrom(Roles()).Draw(t, "role")
		if err := r.Validate(); err != nil {
			t.Fatalf("listed role %q failed validation: %v", r, err)
		}
		if r.String() != string(r) {
			t.Fatalf("String() = %q, want %q", r.String(), string(r))
		}
	})
}

func TestUnknownRolesRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-z]{0,12}`).Filter(func(s string) bool {
			for _, r := range Roles() {
				if string(r) == s {
					return false
				}
			}
			return true
		}).Draw(t, "value")
		if _, err := NewRole(s); err == nil {
			t.Fatalf("NewRole(%q) should fail", s)
		}
	})
}

func TestDisplayName(t *testing.T) {
	full := "Ada Lovelace"
	empty := ""
	tests := []struct {
		name string
		user *User
		want string
	}{
		{name: "full name", user: &User{Username: "ada", FullName: &full}, want: "Ada Lovelace"},
		{name: "empty full name", user: &User{Username: "ada", FullName: &empty}, want: "ada"},
		{name: "no full name", user: &User{Username: "ada"}, want: "ada"},
		{name: "nil user", user: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
