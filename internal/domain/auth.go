package domain

import "time"

// AdminSubjectID is the sentinel subject carried by bootstrap-admin tokens.
// It never corresponds to a users row.
const AdminSubjectID = "admin"

// Identity is the verified content of an access token: who the caller is
// and whether they hold the admin capability.
type Identity struct {
	SubjectID string
	IsAdmin   bool
}

// Token represents issued authentication token metadata.
type Token struct {
	SubjectID string
	IsAdmin   bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}
