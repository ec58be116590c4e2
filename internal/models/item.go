package models

import "time"

type Item struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	RequestID   int64     `json:"request_id,omitempty"` // 0 when the item fulfills no request
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemPatch carries the fields of a partial item update. Nil means
// "leave unchanged".
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// BookingBrief is the short next/last booking summary attached to an
// item snapshot for its owner.
type BookingBrief struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// ItemSnapshot is an item as seen by a viewer: the owner additionally
// gets the nearest upcoming and the most recently started approved
// bookings, everyone gets the comment list.
type ItemSnapshot struct {
	Item
	NextBooking *BookingBrief `json:"next_booking,omitempty"`
	LastBooking *BookingBrief `json:"last_booking,omitempty"`
	Comments    []Comment     `json:"comments"`
}
