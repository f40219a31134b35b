package item

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for item requests.
type Repository interface {
	CreateItemRequest(ctx context.Context, item *ItemRequest) error

	// ListByRequester returns the requests raised by a principal, newest first.
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*ItemRequest, error)

	// ListByVendor returns the requests assigned to a vendor, newest first.
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*ItemRequest, error)

	// SetStatusForVendor writes status only when the request is assigned to
	// vendorID. NotFoundError when nothing matches.
	SetStatusForVendor(ctx context.Context, id, vendorID uuid.UUID, status Status) (*ItemRequest, error)

	// SetStatus writes status unconditionally. NotFoundError for an unknown id.
	SetStatus(ctx context.Context, id uuid.UUID, status Status) (*ItemRequest, error)
}
