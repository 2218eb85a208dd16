// Package models defines server-side data models persisted in the database
// and the derived views built on top of them.
package models

import "time"

// User is a registered account. Password holds the bcrypt hash and is never
// serialised.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
