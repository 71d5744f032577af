// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is a shop account. Email is unique across all users.
type User struct {
	ID           int64     // Identifier assigned by the store on first insert.
	Name         string    // Display name.
	Email        string    // Login identifier and notification address.
	PhoneNumber  string    // Optional contact number.
	PasswordHash string    // bcrypt hash, never the plaintext.
	Active       bool      // Inactive users cannot log in.
	Role         Role      // Authorization role carried in access tokens.
	CreatedAt    time.Time // Timestamp of registration.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
