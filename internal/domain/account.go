package domain

import "time"

// Account is the persisted patient identity record.
//
// PasswordHash never crosses a serialization boundary: listing queries project
// it out at the SQL level and the JSON tag drops it everywhere else.
type Account struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
