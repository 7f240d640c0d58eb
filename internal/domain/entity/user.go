// Package entity contains the pure domain objects of the application.
package entity

import "time"

// User is the identity record. PasswordHash always holds an argon2id hash,
// never the plaintext, and is excluded from every JSON projection.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
