package item

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Kumarvenka/ship-app/internal/apperror"
)

type memoryRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]ItemRequest
}

// NewMemoryRepository creates a process-local item request repository.
func NewMemoryRepository() Repository {
	return &memoryRepo{items: make(map[uuid.UUID]ItemRequest)}
}

func (r *memoryRepo) CreateItemRequest(_ context.Context, it *ItemRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now
	r.items[it.ID] = cloneItem(*it)
	return nil
}

func (r *memoryRepo) ListByRequester(_ context.Context, requesterID uuid.UUID) ([]*ItemRequest, error) {
	return r.filter(func(it *ItemRequest) bool { return it.RequestedBy == requesterID }), nil
}

func (r *memoryRepo) ListByVendor(_ context.Context, vendorID uuid.UUID) ([]*ItemRequest, error) {
	return r.filter(func(it *ItemRequest) bool {
		return it.AssignedVendor != nil && *it.AssignedVendor == vendorID
	}), nil
}

func (r *memoryRepo) SetStatusForVendor(_ context.Context, id, vendorID uuid.UUID, status Status) (*ItemRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[id]
	if !ok || it.AssignedVendor == nil || *it.AssignedVendor != vendorID {
		return nil, apperror.ErrNotFound("item request not found or not assigned to you")
	}
	return r.write(it, status), nil
}

func (r *memoryRepo) SetStatus(_ context.Context, id uuid.UUID, status Status) (*ItemRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[id]
	if !ok {
		return nil, apperror.ErrNotFound("item request not found")
	}
	return r.write(it, status), nil
}

// write must be called with the write lock held.
func (r *memoryRepo) write(it ItemRequest, status Status) *ItemRequest {
	it.Status = status
	it.UpdatedAt = time.Now().UTC()
	r.items[it.ID] = it
	out := cloneItem(it)
	return &out
}

func (r *memoryRepo) filter(match func(*ItemRequest) bool) []*ItemRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*ItemRequest, 0)
	for _, it := range r.items {
		it := cloneItem(it)
		if match(&it) {
			items = append(items, &it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items
}

func cloneItem(it ItemRequest) ItemRequest {
	if it.AssignedVendor != nil {
		id := *it.AssignedVendor
		it.AssignedVendor = &id
	}
	it.Vendor = nil
	it.Requester = nil
	return it
}
