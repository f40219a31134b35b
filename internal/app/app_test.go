package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kumarvenka/ship-app/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		StoreDriver:        config.DriverMemory,
		JWTSecret:          "app-test-secret",
		TokenTTL:           time.Hour,
		BcryptCost:         bcrypt.MinCost,
		RateLimitRPS:       100,
		RateLimitBurst:     100,
		CORSAllowedOrigins: []string{"*"},
	}
}

type client struct {
	t      *testing.T
	server *httptest.Server
}

func newClient(t *testing.T, cfg *config.Config) *client {
	t.Helper()
	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(a.Router)
	t.Cleanup(func() {
		srv.Close()
		a.Close()
	})
	return &client{t: t, server: srv}
}

func (c *client) call(method, path, token string, body, out interface{}) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.server.URL+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// register signs a principal up and logs it in, returning its id and token.
func (c *client) register(name, email, role, port, ship string) (string, string) {
	c.t.Helper()
	status := c.call(http.MethodPost, "/auth/signup", "", map[string]string{
		"name": name, "email": email, "password": "pw-" + name, "role": role,
		"portName": port, "shipName": ship,
	}, nil)
	require.Equal(c.t, http.StatusCreated, status)

	var session struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	status = c.call(http.MethodPost, "/auth/login", "", map[string]string{
		"email": email, "password": "pw-" + name,
	}, &session)
	require.Equal(c.t, http.StatusOK, status)
	require.NotEmpty(c.t, session.Token)
	return session.User.ID, session.Token
}

func TestWelcome(t *testing.T) {
	c := newClient(t, testConfig())
	var body map[string]string
	assert.Equal(t, http.StatusOK, c.call(http.MethodGet, "/", "", nil, &body))
	assert.Equal(t, "Welcome to OneMarineX Backend API", body["message"])
}

func TestPortScenario(t *testing.T) {
	c := newClient(t, testConfig())
	_, crew := c.register("C1", "c1@ship.io", "crew", "", "MV Aurora")
	driverID, driver := c.register("D1", "d1@ship.io", "driver", "Vizag", "")
	vendorID, vendor := c.register("V1", "v1@ship.io", "vendor", "Vizag", "")
	_, admin := c.register("A1", "a1@ship.io", "admin", "", "")

	// Cab: pick a driver at the port, then let the driver accept and confirm.
	var drivers []map[string]interface{}
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/cabs/drivers/by-port/Vizag", crew, nil, &drivers))
	require.Len(t, drivers, 1)
	assert.Equal(t, driverID, drivers[0]["id"])
	assert.NotContains(t, drivers[0], "passwordHash")

	var cabReq map[string]interface{}
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/cabs/request", crew, map[string]string{
		"portName": "Vizag", "shipName": "MV Aurora", "contactNumber": "12345",
		"pickupTime": "09:30", "pickupLocation": "Berth 4", "dropLocation": "Airport",
		"assignedDriver": driverID,
	}, &cabReq))
	cabID := cabReq["id"].(string)

	assert.Equal(t, http.StatusOK, c.call(http.MethodPut, "/cabs/"+cabID+"/accept", driver, nil, nil))
	assert.Equal(t, http.StatusOK, c.call(http.MethodPut, "/cabs/"+cabID+"/confirm", driver, nil, nil))
	assert.Equal(t, http.StatusForbidden, c.call(http.MethodPut, "/cabs/"+cabID+"/confirm", vendor, nil, nil))

	var cabs []map[string]interface{}
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/cabs/crew", crew, nil, &cabs))
	require.Len(t, cabs, 1)
	assert.Equal(t, "Confirmed", cabs[0]["status"])

	// Items: crew self-submit, then an admin order through the vendor.
	var submitted struct {
		Message string                 `json:"message"`
		Item    map[string]interface{} `json:"item"`
	}
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/items/request", crew, map[string]interface{}{
		"itemName": "First Aid Kit", "quantity": 2,
	}, &submitted))
	assert.Equal(t, "MV Aurora", submitted.Item["shipName"])
	assert.Equal(t, "Unknown", submitted.Item["portName"])
	assert.Equal(t, "Submitted", submitted.Item["status"])

	var order map[string]interface{}
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/items/create", admin, map[string]interface{}{
		"itemName": "Fresh Water", "quantity": 20, "portName": "Vizag", "assignedVendor": vendorID,
	}, &order))
	orderID := order["id"].(string)

	var rejected map[string]interface{}
	require.Equal(t, http.StatusOK, c.call(http.MethodPut, "/items/"+orderID+"/accept", vendor,
		map[string]bool{"accept": false}, &rejected))
	assert.Equal(t, "Rejected", rejected["status"])

	var delivered map[string]interface{}
	require.Equal(t, http.StatusOK, c.call(http.MethodPut, "/items/"+orderID+"/status", admin,
		map[string]string{"status": "Delivered"}, &delivered))
	assert.Equal(t, "Delivered", delivered["status"])
}

func TestAuthErrors(t *testing.T) {
	c := newClient(t, testConfig())
	c.register("C1", "c1@ship.io", "crew", "", "")

	var msg map[string]string
	assert.Equal(t, http.StatusBadRequest, c.call(http.MethodPost, "/auth/signup", "", map[string]string{
		"name": "C1", "email": "c1@ship.io", "password": "x", "role": "crew",
	}, &msg))
	assert.Equal(t, "user already exists", msg["message"])

	assert.Equal(t, http.StatusBadRequest, c.call(http.MethodPost, "/auth/login", "", map[string]string{
		"email": "nobody@ship.io", "password": "x",
	}, nil))
	assert.Equal(t, http.StatusUnauthorized, c.call(http.MethodPost, "/auth/login", "", map[string]string{
		"email": "c1@ship.io", "password": "wrong",
	}, nil))
	assert.Equal(t, http.StatusUnauthorized, c.call(http.MethodGet, "/cabs/crew", "", nil, nil))
}

func TestAuthIsRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	c := newClient(t, cfg)

	login := map[string]string{"email": "nobody@ship.io", "password": "x"}
	assert.Equal(t, http.StatusBadRequest, c.call(http.MethodPost, "/auth/login", "", login, nil))
	assert.Equal(t, http.StatusTooManyRequests, c.call(http.MethodPost, "/auth/login", "", login, nil))

	// The limiter covers /auth only.
	assert.Equal(t, http.StatusOK, c.call(http.MethodGet, "/", "", nil, nil))
}

func TestNew_RejectsBadSecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = ""
	_, err := New(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestCamelCasePayloads(t *testing.T) {
	c := newClient(t, testConfig())

	signup := func(body string) map[string]interface{} {
		var out struct {
			User map[string]interface{} `json:"user"`
		}
		require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/auth/signup", "", json.RawMessage(body), &out))
		return out.User
	}
	drv := signup(`{"name":"Ravi","email":"ravi@ship.io","password":"pw","role":"driver","portName":"Vizag"}`)
	assert.Equal(t, "Vizag", drv["portName"])
	crw := signup(`{"name":"Anil","email":"anil@ship.io","password":"pw","role":"crew","shipName":"MV Aurora"}`)
	assert.Equal(t, "MV Aurora", crw["shipName"])
	vnd := signup(`{"name":"Sri","email":"sri@ship.io","password":"pw","role":"vendor","portName":"Vizag"}`)

	var session struct {
		Token string                 `json:"token"`
		User  map[string]interface{} `json:"user"`
	}
	require.Equal(t, http.StatusOK, c.call(http.MethodPost, "/auth/login", "",
		json.RawMessage(`{"email":"anil@ship.io","password":"pw"}`), &session))
	assert.Equal(t, "MV Aurora", session.User["shipName"])
	crew := session.Token

	var cabReq map[string]interface{}
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/cabs/request", crew, json.RawMessage(
		`{"portName":"Vizag","shipName":"MV Aurora","contactNumber":"98480","pickupTime":"09:30",`+
			`"pickupLocation":"Berth 4","dropLocation":"Airport","assignedDriver":"`+drv["id"].(string)+`"}`,
	), &cabReq))
	assert.Equal(t, drv["id"], cabReq["assignedDriver"])
	assert.Equal(t, "Berth 4", cabReq["pickupLocation"])
	assert.Equal(t, "Requested", cabReq["status"])

	var submitted struct {
		Item map[string]interface{} `json:"item"`
	}
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/items/request", crew,
		json.RawMessage(`{"itemName":"First Aid Kit","quantity":2}`), &submitted))
	assert.Equal(t, "First Aid Kit", submitted.Item["itemName"])
	assert.EqualValues(t, 2, submitted.Item["quantity"])
	assert.Equal(t, "MV Aurora", submitted.Item["shipName"])

	_, admin := c.register("A1", "a1@ship.io", "admin", "", "")
	var order map[string]interface{}
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/items/create", admin, json.RawMessage(
		`{"itemName":"Fresh Water","quantity":20,"portName":"Vizag","assignedVendor":"`+vnd["id"].(string)+`"}`,
	), &order))
	assert.Equal(t, vnd["id"], order["assignedVendor"])
	assert.Equal(t, "Fresh Water", order["itemName"])
}

func TestAuthLimiterIgnoresForwardedFor(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	c := newClient(t, cfg)

	limited := 0
	for i := 0; i < 5; i++ {
		req, err := http.NewRequest(http.MethodPost, c.server.URL+"/auth/login",
			strings.NewReader(`{"email":"nobody@ship.io","password":"x"}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		req.Header.Set("X-Real-IP", fmt.Sprintf("203.0.113.%d", i+1))
		resp, err := c.server.Client().Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Equal(t, 4, limited)
}
