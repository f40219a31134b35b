//go:build container
// +build container

package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kumarvenka/ship-app/internal/apperror"
	"github.com/Kumarvenka/ship-app/internal/platform/database/dbtest"
)

func TestPostgresRepository(t *testing.T) {
	repo := NewPostgresRepository(dbtest.Postgres(t))
	ctx := context.Background()

	v1 := &User{ID: uuid.New(), Name: "V1", Email: "v1@ship.io", PasswordHash: "h", Role: RoleVendor, PortName: "Vizag"}
	v2 := &User{ID: uuid.New(), Name: "V2", Email: "v2@ship.io", PasswordHash: "h", Role: RoleVendor, PortName: "vizag"}
	d1 := &User{ID: uuid.New(), Name: "D1", Email: "d1@ship.io", PasswordHash: "h", Role: RoleDriver, PortName: "Vizag"}
	c1 := &User{ID: uuid.New(), Name: "C1", Email: "c1@ship.io", PasswordHash: "h", Role: RoleCrew, ShipName: "MV Aurora"}
	for _, u := range []*User{v1, v2, d1, c1} {
		require.NoError(t, repo.CreateUser(ctx, u))
		assert.False(t, u.CreatedAt.IsZero())
	}

	t.Run("duplicate email", func(t *testing.T) {
		dup := &User{ID: uuid.New(), Name: "X", Email: "v1@ship.io", PasswordHash: "h", Role: RoleCrew}
		var ce *apperror.ConflictError
		assert.ErrorAs(t, repo.CreateUser(ctx, dup), &ce)
	})

	t.Run("get by email and id", func(t *testing.T) {
		got, err := repo.GetUserByEmail(ctx, "c1@ship.io")
		require.NoError(t, err)
		assert.Equal(t, c1.ID, got.ID)
		assert.Equal(t, "MV Aurora", got.ShipName)
		assert.Empty(t, got.PortName)

		got, err = repo.GetUserByID(ctx, d1.ID)
		require.NoError(t, err)
		assert.Equal(t, RoleDriver, got.Role)
		assert.Equal(t, "Vizag", got.PortName)
	})

	t.Run("not found", func(t *testing.T) {
		var nf *apperror.NotFoundError
		_, err := repo.GetUserByEmail(ctx, "nobody@ship.io")
		assert.ErrorAs(t, err, &nf)
		_, err = repo.GetUserByID(ctx, uuid.New())
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("by port and role is exact", func(t *testing.T) {
		vendors, err := repo.ListUsersByPortAndRole(ctx, "Vizag", RoleVendor)
		require.NoError(t, err)
		require.Len(t, vendors, 1)
		assert.Equal(t, v1.ID, vendors[0].ID)

		none, err := repo.ListUsersByPortAndRole(ctx, "Chennai", RoleVendor)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("by ids skips unknown", func(t *testing.T) {
		got, err := repo.ListUsersByIDs(ctx, []uuid.UUID{v1.ID, c1.ID, uuid.New()})
		require.NoError(t, err)
		ids := make([]uuid.UUID, 0, len(got))
		for _, u := range got {
			ids = append(ids, u.ID)
		}
		assert.ElementsMatch(t, []uuid.UUID{v1.ID, c1.ID}, ids)
	})
}
