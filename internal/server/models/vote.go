package models

import "time"

// Vote joins one User to one Link. The store keeps (UserID, LinkID) unique.
type Vote struct {
	ID        int64
	UserID    int64
	LinkID    int64
	CreatedAt time.Time
}
