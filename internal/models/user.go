package models

import "time"

// User is one account row. PasswordHash never leaves the process.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	LoginID      string    `json:"loginId"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Enabled      bool      `json:"enabled"`
}

// NewUser builds an enabled, not yet persisted user. CreatedAt and UpdatedAt
// are both set to now.
func NewUser(username, loginID, passwordHash string, now time.Time) *User {
	now = now.UTC()
	return &User{
		Username:     username,
		LoginID:      loginID,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
		Enabled:      true,
	}
}

// Touch refreshes UpdatedAt. Call it on every mutation before persisting.
func (u *User) Touch(now time.Time) {
	u.UpdatedAt = now.UTC()
}

// UserResponse is the public projection of a User.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	LoginID   string    `json:"loginId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Enabled   bool      `json:"enabled"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		LoginID:   u.LoginID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Enabled:   u.Enabled,
	}
}
