package domain

import "time"

// User models a registered account. The password is never held in
// plaintext: PasswordHash is always paired with the Salt that produced it.
type User struct {
	ID           string    `json:"id"`
	EmailAddress string    `json:"email_address"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name,omitempty"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
