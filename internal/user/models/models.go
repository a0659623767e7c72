package models

import "time"

// User is a profile record. Name and email are opaque to interaction recording,
// which only cares that the id resolves.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

// Profile holds the mutable attributes of a user.
type Profile struct {
	Name  string
	Email string
}

func (u *User) Apply(p Profile, now time.Time) {
	u.Name = p.Name
	u.Email = p.Email
	u.UpdatedAt = now
}
