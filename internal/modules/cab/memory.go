package cab

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Kumarvenka/ship-app/internal/apperror"
)

type memoryRepo struct {
	mu   sync.RWMutex
	cabs map[uuid.UUID]CabRequest
}

// NewMemoryRepository creates a process-local cab request repository.
func NewMemoryRepository() Repository {
	return &memoryRepo{cabs: make(map[uuid.UUID]CabRequest)}
}

func (r *memoryRepo) CreateCabRequest(_ context.Context, c *CabRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.cabs[c.ID] = cloneCab(*c)
	return nil
}

func (r *memoryRepo) ListByRequester(_ context.Context, requesterID uuid.UUID) ([]*CabRequest, error) {
	return r.filter(func(c *CabRequest) bool { return c.RequestedBy == requesterID }), nil
}

func (r *memoryRepo) ListByDriver(_ context.Context, driverID uuid.UUID) ([]*CabRequest, error) {
	return r.filter(func(c *CabRequest) bool {
		return c.AssignedDriver != nil && *c.AssignedDriver == driverID
	}), nil
}

func (r *memoryRepo) SetStatusForDriver(_ context.Context, id, driverID uuid.UUID, status Status) (*CabRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cabs[id]
	if !ok || c.AssignedDriver == nil || *c.AssignedDriver != driverID {
		return nil, apperror.ErrNotFound("cab request not found or not assigned to you")
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	r.cabs[id] = c

	out := cloneCab(c)
	return &out, nil
}

func (r *memoryRepo) filter(match func(*CabRequest) bool) []*CabRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cabs := make([]*CabRequest, 0)
	for _, c := range r.cabs {
		c := cloneCab(c)
		if match(&c) {
			cabs = append(cabs, &c)
		}
	}
	sort.Slice(cabs, func(i, j int) bool { return cabs[i].CreatedAt.After(cabs[j].CreatedAt) })
	return cabs
}

func cloneCab(c CabRequest) CabRequest {
	if c.AssignedDriver != nil {
		id := *c.AssignedDriver
		c.AssignedDriver = &id
	}
	c.Driver = nil
	c.Requester = nil
	return c
}
