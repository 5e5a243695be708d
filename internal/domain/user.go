package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleAdmin:
		return true
	}
	return false
}

// Image is an uploaded asset reference. URLs are opaque; the store that
// produced them owns their format.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	Avatar    *Image    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(u.Email) == "" || !strings.Contains(u.Email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: invalid role %q", ErrValidation, u.Role)
	}
	return nil
}

// UserUpdate carries the profile fields a user may change. Nil means "leave
// as is".
type UserUpdate struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Avatar *Image  `json:"avatar"`
}

func (upd UserUpdate) Apply(u *User) {
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.Avatar != nil {
		u.Avatar = upd.Avatar
	}
}
