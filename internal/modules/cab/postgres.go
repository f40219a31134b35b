package cab

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Kumarvenka/ship-app/internal/apperror"
	"github.com/Kumarvenka/ship-app/internal/platform/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const cabColumns = `id, port_name, ship_name, contact_number, pickup_time, pickup_location, drop_location,
	status, assigned_driver, requested_by, created_at, updated_at`

func (r *postgresRepo) CreateCabRequest(ctx context.Context, c *CabRequest) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cab_requests
		  (id, port_name, ship_name, contact_number, pickup_time, pickup_location, drop_location,
		   status, assigned_driver, requested_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at`,
		c.ID, c.PortName, c.ShipName, c.ContactNumber, c.PickupTime, c.PickupLocation, c.DropLocation,
		c.Status, nullableUUID(c.AssignedDriver), c.RequestedBy,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert cab_request: %w", err)
	}
	return nil
}

func (r *postgresRepo) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*CabRequest, error) {
	return r.queryCabs(ctx, `SELECT `+cabColumns+` FROM cab_requests
		WHERE requested_by=$1 ORDER BY created_at DESC`, requesterID)
}

func (r *postgresRepo) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*CabRequest, error) {
	return r.queryCabs(ctx, `SELECT `+cabColumns+` FROM cab_requests
		WHERE assigned_driver=$1 ORDER BY created_at DESC`, driverID)
}

// SetStatusForDriver matches on id and owner and writes in a single statement,
// so the ownership check and the write cannot interleave with another call.
func (r *postgresRepo) SetStatusForDriver(ctx context.Context, id, driverID uuid.UUID, status Status) (*CabRequest, error) {
	c, err := scanCab(r.db.QueryRowContext(ctx, `
		UPDATE cab_requests SET status=$1, updated_at=now()
		WHERE id=$2 AND assigned_driver=$3
		RETURNING `+cabColumns, status, id, driverID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound("cab request not found or not assigned to you")
	}
	if err != nil {
		return nil, fmt.Errorf("update cab_request status: %w", err)
	}
	return c, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) queryCabs(ctx context.Context, query string, args ...interface{}) ([]*CabRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cab_requests: %w", err)
	}
	defer rows.Close()

	cabs := make([]*CabRequest, 0)
	for rows.Next() {
		c, err := scanCab(rows)
		if err != nil {
			return nil, err
		}
		cabs = append(cabs, c)
	}
	return cabs, rows.Err()
}

func scanCab(row database.Scanner) (*CabRequest, error) {
	c := &CabRequest{}
	var driver uuid.NullUUID
	err := row.Scan(
		&c.ID, &c.PortName, &c.ShipName, &c.ContactNumber, &c.PickupTime, &c.PickupLocation, &c.DropLocation,
		&c.Status, &driver, &c.RequestedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if driver.Valid {
		id := driver.UUID
		c.AssignedDriver = &id
	}
	return c, nil
}

func nullableUUID(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
