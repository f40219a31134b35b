package item

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Kumarvenka/ship-app/internal/apperror"
	"github.com/Kumarvenka/ship-app/internal/modules/assignment"
	"github.com/Kumarvenka/ship-app/internal/modules/auth"
	"github.com/Kumarvenka/ship-app/internal/modules/user"
)

// Service defines the item request workflow.
type Service interface {
	// Create raises a request, optionally assigned to a vendor. Admin and crew.
	Create(ctx context.Context, requester *user.User, req CreateRequest) (*ItemRequest, error)

	// CrewSubmit raises an unassigned request located at the crew member's
	// recorded ship and port.
	CrewSubmit(ctx context.Context, crew *user.User, req SubmitRequest) (*ItemRequest, error)

	// ListForRequester returns the caller's own requests. Admin and crew.
	ListForRequester(ctx context.Context, requester *user.User) ([]*ItemRequest, error)

	// ListForVendor returns the requests assigned to the caller. Vendors only.
	ListForVendor(ctx context.Context, vendor *user.User) ([]*ItemRequest, error)

	ListVendorsForPort(ctx context.Context, caller *user.User, portName string) ([]*user.User, error)

	// VendorRespond confirms or rejects a request assigned to the caller.
	VendorRespond(ctx context.Context, vendor *user.User, id string, accept bool) (*ItemRequest, error)

	// SetStatus overwrites the status of any request with the value supplied,
	// whatever the current status. Admin only.
	SetStatus(ctx context.Context, admin *user.User, id string, status string) (*ItemRequest, error)
}

// Options tunes the workflow.
type Options struct {
	// VerifyAssignees rejects a request whose assigned vendor is not a vendor
	// registered at the request's port.
	VerifyAssignees bool
	Logger          *slog.Logger
}

type service struct {
	repo     Repository
	users    user.Repository
	resolver assignment.Resolver
	opts     Options
	logger   *slog.Logger
}

// NewService creates a new item request service.
func NewService(repo Repository, users user.Repository, resolver assignment.Resolver, opts Options) Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, users: users, resolver: resolver, opts: opts, logger: logger}
}

func (s *service) Create(ctx context.Context, requester *user.User, req CreateRequest) (*ItemRequest, error) {
	if err := auth.Require(requester, user.RoleAdmin, user.RoleCrew); err != nil {
		return nil, err
	}

	it := &ItemRequest{
		ID:          uuid.New(),
		ItemName:    req.ItemName,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Notes:       req.Notes,
		ShipName:    req.ShipName,
		PortName:    req.PortName,
		ETA:         req.ETA,
		ImageURL:    req.ImageURL,
		Status:      StatusSubmitted,
		RequestedBy: requester.ID,
	}

	if vendorRef := strings.TrimSpace(req.AssignedVendor); vendorRef != "" {
		vendorID, err := uuid.Parse(vendorRef)
		if err != nil {
			return nil, apperror.ErrValidation("assignedVendor must be a valid id")
		}
		if s.opts.VerifyAssignees {
			ok, err := s.resolver.Eligible(ctx, vendorID, user.RoleVendor, req.PortName)
			if err != nil {
				return nil, apperror.Internal(err, "failed to create item request")
			}
			if !ok {
				return nil, apperror.ErrValidation("assigned vendor is not a vendor at port %s", req.PortName)
			}
		}
		it.AssignedVendor = &vendorID
	}

	return s.save(ctx, it)
}

func (s *service) CrewSubmit(ctx context.Context, crew *user.User, req SubmitRequest) (*ItemRequest, error) {
	if err := auth.Require(crew, user.RoleCrew); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.ItemName)
	if name == "" || req.Quantity <= 0 {
		return nil, apperror.ErrValidation("item name and quantity are required")
	}

	it := &ItemRequest{
		ID:          uuid.New(),
		ItemName:    name,
		Quantity:    req.Quantity,
		ShipName:    orUnknown(crew.ShipName),
		PortName:    orUnknown(crew.PortName),
		Status:      StatusSubmitted,
		RequestedBy: crew.ID,
	}
	return s.save(ctx, it)
}

func (s *service) ListForRequester(ctx context.Context, requester *user.User) ([]*ItemRequest, error) {
	if err := auth.Require(requester, user.RoleAdmin, user.RoleCrew); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByRequester(ctx, requester.ID)
	if err != nil {
		return nil, apperror.Internal(err, "failed to fetch item requests")
	}
	return s.populate(ctx, items, "failed to fetch item requests")
}

func (s *service) ListForVendor(ctx context.Context, vendor *user.User) ([]*ItemRequest, error) {
	if err := auth.Require(vendor, user.RoleVendor); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, apperror.Internal(err, "failed to fetch assigned item requests")
	}
	return s.populate(ctx, items, "failed to fetch assigned item requests")
}

func (s *service) ListVendorsForPort(ctx context.Context, caller *user.User, portName string) ([]*user.User, error) {
	return s.resolver.ListVendorsForPort(ctx, caller, portName)
}

func (s *service) VendorRespond(ctx context.Context, vendor *user.User, id string, accept bool) (*ItemRequest, error) {
	if err := auth.Require(vendor, user.RoleVendor); err != nil {
		return nil, err
	}
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.ErrNotFound("item request not found or not assigned to you")
	}

	status := StatusRejected
	if accept {
		status = StatusConfirmed
	}
	it, err := s.repo.SetStatusForVendor(ctx, itemID, vendor.ID, status)
	if err != nil {
		return nil, apperror.Internal(err, "failed to update acceptance status")
	}
	s.logger.InfoContext(ctx, "item request answered", "item_id", it.ID, "vendor_id", vendor.ID, "status", status)
	return it, nil
}

func (s *service) SetStatus(ctx context.Context, admin *user.User, id string, status string) (*ItemRequest, error) {
	if err := auth.Require(admin, user.RoleAdmin); err != nil {
		return nil, err
	}
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.ErrNotFound("item request not found")
	}

	it, err := s.repo.SetStatus(ctx, itemID, Status(status))
	if err != nil {
		return nil, apperror.Internal(err, "failed to update item request status")
	}
	s.logger.InfoContext(ctx, "item request status set", "item_id", it.ID, "admin_id", admin.ID, "status", status)
	return it, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (s *service) save(ctx context.Context, it *ItemRequest) (*ItemRequest, error) {
	if err := s.repo.CreateItemRequest(ctx, it); err != nil {
		return nil, apperror.Internal(err, "failed to create item request")
	}
	s.logger.InfoContext(ctx, "item request created", "item_id", it.ID, "requested_by", it.RequestedBy, "port", it.PortName)
	return it, nil
}

// populate attaches vendor and requester summaries to each request.
func (s *service) populate(ctx context.Context, items []*ItemRequest, failMsg string) ([]*ItemRequest, error) {
	ids := make([]uuid.UUID, 0, len(items)*2)
	for _, it := range items {
		ids = append(ids, it.RequestedBy)
		if it.AssignedVendor != nil {
			ids = append(ids, *it.AssignedVendor)
		}
	}
	dir, err := user.Directory(ctx, s.users, ids)
	if err != nil {
		return nil, apperror.Internal(err, failMsg)
	}
	for _, it := range items {
		it.Requester = dir[it.RequestedBy]
		if it.AssignedVendor != nil {
			it.Vendor = dir[*it.AssignedVendor]
		}
	}
	return items, nil
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknownLocation
	}
	return s
}
