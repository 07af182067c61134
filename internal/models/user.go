package models

import "time"

// User represents a user account in the system.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"` // Never expose this to the client
	InitialPlacement bool      `json:"initial_placement"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Profile is the public view of a user returned by the profile endpoint.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Profile returns the public fields of the user.
func (u User) Profile() Profile {
	return Profile{Username: u.Username, Email: u.Email}
}
