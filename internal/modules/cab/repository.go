package cab

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for cab requests.
type Repository interface {
	// CreateCabRequest persists a new request.
	CreateCabRequest(ctx context.Context, c *CabRequest) error

	// ListByRequester returns the requests raised by a crew member, newest first.
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*CabRequest, error)

	// ListByDriver returns the requests assigned to a driver, newest first.
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*CabRequest, error)

	// SetStatusForDriver sets the status in one atomic step, but only when the
	// stored request is assigned to driverID. It returns a NotFoundError when no
	// request matches both the id and the driver.
	SetStatusForDriver(ctx context.Context, id, driverID uuid.UUID, status Status) (*CabRequest, error)
}
