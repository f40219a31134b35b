package item

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kumarvenka/ship-app/internal/modules/assignment"
	"github.com/Kumarvenka/ship-app/internal/modules/auth"
	"github.com/Kumarvenka/ship-app/internal/modules/user"
)

type httpFixture struct {
	router *chi.Mux
	auth   auth.Service
}

func newHTTPFixture(t *testing.T) *httpFixture {
	t.Helper()
	users := user.NewMemoryRepository()
	tokens, err := auth.NewTokenIssuer("item-test-secret", time.Hour)
	require.NoError(t, err)
	authSvc := auth.NewService(user.NewService(users, bcrypt.MinCost), users, tokens, nil)

	router := chi.NewRouter()
	svc := NewService(NewMemoryRepository(), users, assignment.NewResolver(users), Options{})
	NewHandler(svc, auth.NewGate(authSvc)).RegisterRoutes(router)
	return &httpFixture{router: router, auth: authSvc}
}

func (f *httpFixture) login(t *testing.T, in user.RegisterInput) (string, string) {
	t.Helper()
	ctx := context.Background()
	in.Password = "secret"
	u, err := f.auth.Register(ctx, in)
	require.NoError(t, err)
	s, err := f.auth.Login(ctx, in.Email, "secret")
	require.NoError(t, err)
	return u.ID.String(), s.Token
}

func (f *httpFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CrewSubmit(t *testing.T) {
	f := newHTTPFixture(t)
	_, crew := f.login(t, user.RegisterInput{Name: "C1", Email: "c1@x.io", Role: "crew", ShipName: "MV Aurora"})

	rec := f.do(t, http.MethodPost, "/items/request", crew, map[string]interface{}{
		"itemName": "First Aid Kit", "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var body struct {
		Message string      `json:"message"`
		Item    ItemRequest `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Item request submitted successfully", body.Message)
	assert.Equal(t, StatusSubmitted, body.Item.Status)
	assert.Equal(t, "MV Aurora", body.Item.ShipName)
	assert.Equal(t, "Unknown", body.Item.PortName)

	rec = f.do(t, http.MethodPost, "/items/request", crew, map[string]interface{}{"itemName": "Rope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/items/crew/my-requests", crew, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []ItemRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	assert.Len(t, mine, 1)
}

func TestHandler_VendorAndAdminFlow(t *testing.T) {
	f := newHTTPFixture(t)
	_, admin := f.login(t, user.RegisterInput{Name: "A1", Email: "a1@x.io", Role: "admin"})
	vendorID, vendor := f.login(t, user.RegisterInput{Name: "V1", Email: "v1@x.io", Role: "vendor", PortName: "Vizag"})
	_, other := f.login(t, user.RegisterInput{Name: "V2", Email: "v2@x.io", Role: "vendor", PortName: "Vizag"})

	rec := f.do(t, http.MethodPost, "/items/create", admin, map[string]interface{}{
		"itemName": "Fresh Water", "quantity": 20, "portName": "Vizag", "assignedVendor": vendorID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created ItemRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := "/items/" + created.ID.String()

	rec = f.do(t, http.MethodPut, path+"/accept", other, map[string]bool{"accept": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPut, path+"/accept", vendor, map[string]bool{"accept": false})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPut, path+"/status", vendor, map[string]string{"status": "Delivered"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPut, path+"/status", admin, map[string]string{"status": "Delivered"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated ItemRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, StatusDelivered, updated.Status)

	rec = f.do(t, http.MethodGet, "/items/vendor/assigned", vendor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var assigned []ItemRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assigned))
	require.Len(t, assigned, 1)
	assert.Equal(t, StatusDelivered, assigned[0].Status)

	rec = f.do(t, http.MethodGet, "/items/vendors/by-port/Vizag", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var vendors []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vendors))
	assert.Len(t, vendors, 2)

	rec = f.do(t, http.MethodGet, "/items/admin/requests", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_RespondWithoutBodyRejects(t *testing.T) {
	f := newHTTPFixture(t)
	_, admin := f.login(t, user.RegisterInput{Name: "A1", Email: "a1@x.io", Role: "admin"})
	vendorID, vendor := f.login(t, user.RegisterInput{Name: "V1", Email: "v1@x.io", Role: "vendor", PortName: "Vizag"})

	rec := f.do(t, http.MethodPost, "/items/create", admin, map[string]interface{}{
		"itemName": "Rope", "quantity": 3, "portName": "Vizag", "assignedVendor": vendorID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created ItemRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := "/items/" + created.ID.String() + "/accept"

	for _, body := range []interface{}{nil, map[string]string{}} {
		rec = f.do(t, http.MethodPut, path, vendor, body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got ItemRequest
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, StatusRejected, got.Status)
	}

	req := httptest.NewRequest(http.MethodPut, path, bytes.NewBufferString("{accept"))
	req.Header.Set("Authorization", "Bearer "+vendor)
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
