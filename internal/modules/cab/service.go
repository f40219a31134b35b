package cab

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

// Service defines the cab request workflow.
type Service interface {
	// Create raises a request with status Requested. Crew only.
	Create(ctx context.Context, requester *user.User, req CreateRequest) (*CabRequest, error)

	// ListForRequester returns the caller's own requests. Crew only.
	ListForRequester(ctx context.Context, requester *user.User) ([]*CabRequest, error)

	// ListForDriver returns the requests assigned to the caller. Drivers only.
	ListForDriver(ctx context.Context, driver *user.User) ([]*CabRequest, error)

	// Accept, Decline and Confirm set the status of a request assigned to the
	// calling driver, whatever its current status.
	Accept(ctx context.Context, driver *user.User, id string) (*CabRequest, error)
	Decline(ctx context.Context, driver *user.User, id string) (*CabRequest, error)
	Confirm(ctx context.Context, driver *user.User, id string) (*CabRequest, error)

	// ListDriversForPort returns the drivers registered at a port. Crew and admin.
	ListDriversForPort(ctx context.Context, caller *user.User, portName string) ([]*user.User, error)
}

// Options tunes the workflow.
type Options struct {
	// VerifyAssignees rejects a request whose assigned driver is not a driver
	// registered at the request's port. Off by default: the client's choice is trusted.
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

// NewService creates a new cab request service.
func NewService(repo Repository, users user.Repository, resolver assignment.Resolver, opts Options) Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, users: users, resolver: resolver, opts: opts, logger: logger}
}

func (s *service) Create(ctx context.Context, requester *user.User, req CreateRequest) (*CabRequest, error) {
	if err := auth.Require(requester, user.RoleCrew); err != nil {
		return nil, err
	}

	c := &CabRequest{
		ID:             uuid.New(),
		PortName:       req.PortName,
		ShipName:       req.ShipName,
		ContactNumber:  req.ContactNumber,
		PickupTime:     req.PickupTime,
		PickupLocation: req.PickupLocation,
		DropLocation:   req.DropLocation,
		Status:         StatusRequested,
		RequestedBy:    requester.ID,
	}

	if driverRef := strings.TrimSpace(req.AssignedDriver); driverRef != "" {
		driverID, err := uuid.Parse(driverRef)
		if err != nil {
			return nil, apperror.ErrValidation("assignedDriver must be a valid id")
		}
		if s.opts.VerifyAssignees {
			ok, err := s.resolver.Eligible(ctx, driverID, user.RoleDriver, req.PortName)
			if err != nil {
				return nil, apperror.Internal(err, "failed to create cab request")
			}
			if !ok {
				return nil, apperror.ErrValidation("assigned driver is not a driver at port %s", req.PortName)
			}
		}
		c.AssignedDriver = &driverID
	}

	if err := s.repo.CreateCabRequest(ctx, c); err != nil {
		return nil, apperror.Internal(err, "failed to create cab request")
	}
	s.logger.InfoContext(ctx, "cab request created", "cab_id", c.ID, "requested_by", c.RequestedBy, "port", c.PortName)
	return c, nil
}

func (s *service) ListForRequester(ctx context.Context, requester *user.User) ([]*CabRequest, error) {
	if err := auth.Require(requester, user.RoleCrew); err != nil {
		return nil, err
	}
	cabs, err := s.repo.ListByRequester(ctx, requester.ID)
	if err != nil {
		return nil, apperror.Internal(err, "failed to fetch cab requests")
	}
	return s.populate(ctx, cabs, "failed to fetch cab requests")
}

func (s *service) ListForDriver(ctx context.Context, driver *user.User) ([]*CabRequest, error) {
	if err := auth.Require(driver, user.RoleDriver); err != nil {
		return nil, err
	}
	cabs, err := s.repo.ListByDriver(ctx, driver.ID)
	if err != nil {
		return nil, apperror.Internal(err, "failed to fetch assigned cab requests")
	}
	return s.populate(ctx, cabs, "failed to fetch assigned cab requests")
}

func (s *service) Accept(ctx context.Context, driver *user.User, id string) (*CabRequest, error) {
	return s.transition(ctx, driver, id, StatusAccepted)
}

func (s *service) Decline(ctx context.Context, driver *user.User, id string) (*CabRequest, error) {
	return s.transition(ctx, driver, id, StatusDeclined)
}

// Confirm has no precondition on the current status: a Requested or Declined
// request can be confirmed directly.
func (s *service) Confirm(ctx context.Context, driver *user.User, id string) (*CabRequest, error) {
	return s.transition(ctx, driver, id, StatusConfirmed)
}

func (s *service) ListDriversForPort(ctx context.Context, caller *user.User, portName string) ([]*user.User, error) {
	return s.resolver.ListDriversForPort(ctx, caller, portName)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (s *service) transition(ctx context.Context, driver *user.User, id string, status Status) (*CabRequest, error) {
	if err := auth.Require(driver, user.RoleDriver); err != nil {
		return nil, err
	}
	cabID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.ErrNotFound("cab request not found or not assigned to you")
	}

	c, err := s.repo.SetStatusForDriver(ctx, cabID, driver.ID, status)
	if err != nil {
		return nil, apperror.Internal(err, "failed to update cab request")
	}
	s.logger.InfoContext(ctx, "cab request status changed", "cab_id", c.ID, "driver_id", driver.ID, "status", status)
	return c, nil
}

// populate attaches driver and requester summaries to each request.
func (s *service) populate(ctx context.Context, cabs []*CabRequest, failMsg string) ([]*CabRequest, error) {
	ids := make([]uuid.UUID, 0, len(cabs)*2)
	for _, c := range cabs {
		ids = append(ids, c.RequestedBy)
		if c.AssignedDriver != nil {
			ids = append(ids, *c.AssignedDriver)
		}
	}
	dir, err := user.Directory(ctx, s.users, ids)
	if err != nil {
		return nil, apperror.Internal(err, failMsg)
	}
	for _, c := range cabs {
		c.Requester = dir[c.RequestedBy]
		if c.AssignedDriver != nil {
			c.Driver = dir[*c.AssignedDriver]
		}
	}
	return cabs, nil
}
