package models

import "time"

// ItemRequest is a want-ad: a user describes an item they are looking
// for, and other users may add items that fulfill the request.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requester_id"`
	CreatedAt   time.Time `json:"created"`
	Items       []Item    `json:"items,omitempty"`
}
