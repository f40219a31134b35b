package item

import (
	"time"

	"github.com/google/uuid"

	"github.com/Kumarvenka/ship-app/internal/modules/user"
)

// Status is the state of an item request. The column is free text; these are
// the values the workflow itself writes.
type Status string

const (
	StatusSubmitted Status = "Submitted"
	StatusConfirmed Status = "Confirmed"
	StatusRejected  Status = "Rejected"
	StatusDelivered Status = "Delivered"
)

// unknownLocation fills ship and port on a crew submission when the crew
// member has none recorded.
const unknownLocation = "Unknown"

// ItemRequest is a supply request for goods delivered to a ship.
type ItemRequest struct {
	ID             uuid.UUID     `json:"id"`
	ItemName       string        `json:"itemName"`
	Category       string        `json:"category,omitempty"`
	Quantity       int           `json:"quantity"`
	Notes          string        `json:"notes,omitempty"`
	ShipName       string        `json:"shipName"`
	PortName       string        `json:"portName"`
	ETA            string        `json:"eta,omitempty"`
	ImageURL       string        `json:"imageUrl,omitempty"`
	Status         Status        `json:"status"`
	RequestedBy    uuid.UUID     `json:"requestedBy"`
	AssignedVendor *uuid.UUID    `json:"assignedVendor,omitempty"`
	Vendor         *user.Summary `json:"vendor,omitempty"`    // populated on listings
	Requester      *user.Summary `json:"requester,omitempty"` // populated on listings
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// CreateRequest is the full payload used by admins and crew, optionally
// naming a vendor.
type CreateRequest struct {
	ItemName       string `json:"itemName"`
	Category       string `json:"category"`
	Quantity       int    `json:"quantity"`
	Notes          string `json:"notes"`
	ShipName       string `json:"shipName"`
	PortName       string `json:"portName"`
	ETA            string `json:"eta"`
	ImageURL       string `json:"imageUrl"`
	AssignedVendor string `json:"assignedVendor,omitempty"`
}

// SubmitRequest is the crew self-service payload.
type SubmitRequest struct {
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
}

// RespondRequest carries a vendor's decision.
type RespondRequest struct {
	Accept bool `json:"accept"`
}

// StatusRequest carries an admin status override.
type StatusRequest struct {
	Status string `json:"status"`
}
