package domain

import "time"

// User is the domain model for citizens who submit complaints. Complaints
// reference users by id only.
type User struct {
	ID           string
	Name         string
	Number       string
	Email        string
	State        string
	City         string
	Address      string
	Pincode      string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
