package auth

import (
	"errors"
	"testing"
)

func TestNewAdminDisabled(t *testing.T) {
	a, err := NewAdmin("admin", "")
	if err != nil || a != nil {
		t.Errorf("NewAdmin with empty hash = %v, %v; want nil, nil", a, err)
	}
}

func TestNewAdminRejectsBadHash(t *testing.T) {
	if _, err := NewAdmin("admin", "not-a-hash"); !errors.Is(err, ErrInvalidHash) {
		t.Errorf("error = %v, want ErrInvalidHash", err)
	}
}

func TestAdminAuthenticate(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewAdmin("admin", hash)
	if err != nil {
		t.Fatal(err)
	}
	if a.Username() != "admin" {
		t.Errorf("Username = %q", a.Username())
	}

	tests := []struct {
		user, pass string
		want       bool
	}{
		{"admin", "s3cret", true},
		{"admin", "wrong", false},
		{"root", "s3cret", false},
		{"", "", false},
	}
	for _, tt := range tests {
		if got := a.Authenticate(tt.user, tt.pass); got != tt.want {
			t.Errorf("Authenticate(%q, %q) = %v, want %v", tt.user, tt.pass, got, tt.want)
		}
	}
}
