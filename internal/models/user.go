// Package models holds the records persisted in the users, images and
// albums collections, and the patch types used to change them.
package models

import "time"

// User is a registered account as stored. PasswordHash never leaves the
// auth service; everything else sees a SessionUser.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u User) GetID() string { return u.ID }

func (u User) Field(name string) (string, bool) {
	switch name {
	case "id":
		return u.ID, true
	case "name":
		return u.Name, true
	case "email":
		return u.Email, true
	}
	return "", false
}

// Session returns the public projection of u.
func (u User) Session() SessionUser {
	return SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// SessionUser is a User without its password hash.
type SessionUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
