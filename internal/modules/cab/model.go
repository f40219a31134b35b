package cab

import (
	"time"

	"github.com/google/uuid"

	"github.com/Kumarvenka/ship-app/internal/modules/user"
)

// Status represents the lifecycle state of a cab request.
type Status string

// Confirmed is the de facto terminal state; nothing moves a request past it.
const (
	StatusRequested Status = "Requested"
	StatusAccepted  Status = "Accepted"
	StatusDeclined  Status = "Declined"
	StatusConfirmed Status = "Confirmed"
)

// CabRequest is one ground-transport job raised by a crew member.
type CabRequest struct {
	ID             uuid.UUID     `json:"id"`
	PortName       string        `json:"portName"`
	ShipName       string        `json:"shipName"`
	ContactNumber  string        `json:"contactNumber"`
	PickupTime     string        `json:"pickupTime"`
	PickupLocation string        `json:"pickupLocation"`
	DropLocation   string        `json:"dropLocation"`
	Status         Status        `json:"status"`
	AssignedDriver *uuid.UUID    `json:"assignedDriver,omitempty"`
	RequestedBy    uuid.UUID     `json:"requestedBy"`
	Driver         *user.Summary `json:"driver,omitempty"`    // populated on listings
	Requester      *user.Summary `json:"requester,omitempty"` // populated on listings
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// CreateRequest is the payload for raising a cab request. AssignedDriver is
// chosen by the client, typically from the drivers-by-port listing.
type CreateRequest struct {
	PortName       string `json:"portName"`
	ShipName       string `json:"shipName"`
	ContactNumber  string `json:"contactNumber"`
	PickupTime     string `json:"pickupTime"`
	PickupLocation string `json:"pickupLocation"`
	DropLocation   string `json:"dropLocation"`
	AssignedDriver string `json:"assignedDriver,omitempty"`
}
