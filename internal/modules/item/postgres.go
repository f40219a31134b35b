package item

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

const itemColumns = `id, item_name, category, quantity, notes, ship_name, port_name, eta, image_url,
	status, requested_by, assigned_vendor, created_at, updated_at`

func (r *postgresRepo) CreateItemRequest(ctx context.Context, it *ItemRequest) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO item_requests
		  (id, item_name, category, quantity, notes, ship_name, port_name, eta, image_url,
		   status, requested_by, assigned_vendor)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at, updated_at`,
		it.ID, it.ItemName, it.Category, it.Quantity, it.Notes, it.ShipName, it.PortName, it.ETA, it.ImageURL,
		it.Status, it.RequestedBy, nullableUUID(it.AssignedVendor),
	).Scan(&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert item_request: %w", err)
	}
	return nil
}

func (r *postgresRepo) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*ItemRequest, error) {
	return r.queryItems(ctx, `SELECT `+itemColumns+` FROM item_requests
		WHERE requested_by=$1 ORDER BY created_at DESC`, requesterID)
}

func (r *postgresRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*ItemRequest, error) {
	return r.queryItems(ctx, `SELECT `+itemColumns+` FROM item_requests
		WHERE assigned_vendor=$1 ORDER BY created_at DESC`, vendorID)
}

func (r *postgresRepo) SetStatusForVendor(ctx context.Context, id, vendorID uuid.UUID, status Status) (*ItemRequest, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, `
		UPDATE item_requests SET status=$1, updated_at=now()
		WHERE id=$2 AND assigned_vendor=$3
		RETURNING `+itemColumns, status, id, vendorID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound("item request not found or not assigned to you")
	}
	if err != nil {
		return nil, fmt.Errorf("update item_request status: %w", err)
	}
	return it, nil
}

func (r *postgresRepo) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*ItemRequest, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, `
		UPDATE item_requests SET status=$1, updated_at=now()
		WHERE id=$2
		RETURNING `+itemColumns, status, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound("item request not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update item_request status: %w", err)
	}
	return it, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) queryItems(ctx context.Context, query string, args ...interface{}) ([]*ItemRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query item_requests: %w", err)
	}
	defer rows.Close()

	items := make([]*ItemRequest, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanItem(row database.Scanner) (*ItemRequest, error) {
	it := &ItemRequest{}
	var vendor uuid.NullUUID
	err := row.Scan(
		&it.ID, &it.ItemName, &it.Category, &it.Quantity, &it.Notes, &it.ShipName, &it.PortName, &it.ETA, &it.ImageURL,
		&it.Status, &it.RequestedBy, &vendor, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if vendor.Valid {
		id := vendor.UUID
		it.AssignedVendor = &id
	}
	return it, nil
}

func nullableUUID(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
