package domain

import "time"

// Story is an owned record. OwnerID is set once at creation and never
// reassigned; OwnerUsername is denormalized for serialization only.
type Story struct {
	ID            string
	OwnerID       string
	OwnerUsername string
	Title         string
	Content       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
