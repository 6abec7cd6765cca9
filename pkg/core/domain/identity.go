package domain

import "time"

// Identity is the signed-in user as reported by the auth provider
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

// Profile is what gets stored for a user on sign-in
type Profile struct {
	Identity
	LastLogin time.Time `json:"last_login"`
}
