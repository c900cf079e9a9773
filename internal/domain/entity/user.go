package entity

import (
	"time"
)

// User is the stored user record. PasswordHash never leaves the store layer;
// callers receive PublicUser or Identity instead.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func NewUser(name, email, passwordHash string) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

// PublicUser is the projection of a user without credential material.
type PublicUser struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}

// Identity is what a successful authentication yields.
type Identity struct {
	ID    int64
	Name  string
	Email string
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func (u *User) Identity() Identity {
	return Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
