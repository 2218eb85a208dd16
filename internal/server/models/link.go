package models

import "time"

// Link is a submitted resource. PostedByID is nil for legacy, unowned links.
type Link struct {
	ID          int64
	Description string
	URL         string
	CreatedAt   time.Time
	PostedByID  *int64
}

// LinkPatch is a partial update; nil fields keep their stored value.
type LinkPatch struct {
	Description *string
	URL         *string
}

// Empty reports whether the patch changes nothing.
func (p LinkPatch) Empty() bool {
	return p.Description == nil && p.URL == nil
}
