package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewUser_Timestamps(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u := NewUser("Alice", "alice1", "$2a$hash", now)

	if !u.Enabled {
		t.Error("new user should be enabled")
	}
	if !u.CreatedAt.Equal(now) || !u.UpdatedAt.Equal(u.CreatedAt) {
		t.Errorf("unexpected timestamps: created=%v updated=%v", u.CreatedAt, u.UpdatedAt)
	}

	later := now.Add(time.Hour)
	u.Touch(later)
	if !u.UpdatedAt.Equal(later) {
		t.Errorf("Touch: got %v, want %v", u.UpdatedAt, later)
	}
	if !u.CreatedAt.Equal(now) {
		t.Errorf("Touch must not change CreatedAt, got %v", u.CreatedAt)
	}
}

func TestUser_JSONOmitsPassword(t *testing.T) {
	u := NewUser("Alice", "alice1", "$2a$hash", time.Now())
	for _, v := range []any{u, NewUserResponse(u)} {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if strings.Contains(string(b), "password") || strings.Contains(string(b), "$2a$hash") {
			t.Errorf("password leaked in JSON: %s", b)
		}
		if !strings.Contains(string(b), `"loginId":"alice1"`) {
			t.Errorf("loginId missing in JSON: %s", b)
		}
	}
}
