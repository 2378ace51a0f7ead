package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/deposit-engine/api"
	"github.com/warp/deposit-engine/deposit"
	"github.com/warp/deposit-engine/store/sqlite"
)

func newTestServer(t *testing.T) (http.Handler, *sqlite.Store) {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	service := deposit.NewService(store, store)
	handler := api.NewHandler(service, store, zerolog.Nop())
	router := api.NewRouter(handler, zerolog.Nop(), []string{"*"})

	return router, store
}

func createUser(t *testing.T, store *sqlite.Store) deposit.User {
	t.Helper()
	u, err := store.SaveUser(context.Background(), deposit.User{Name: "Asha Rao", Email: "asha@example.com"})
	require.NoError(t, err)
	return *u
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) api.Envelope {
	t.Helper()
	var env api.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestBookDeposit_Success(t *testing.T) {
	router, store := newTestServer(t)
	user := createUser(t, store)

	rec := doJSON(t, router, http.MethodPost, "/api/fd/book", map[string]any{
		"user_id":       string(user.ID),
		"amount":        10000,
		"scheme":        "Premium Saver",
		"tenure_months": 12,
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Fixed deposit booked successfully.", env.Message)

	data := env.Data.(map[string]any)
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, string(user.ID), data["user_id"])
	assert.Equal(t, "10000.00", data["amount"])
	assert.Equal(t, "7", data["interest_rate"])
	assert.Equal(t, "ACTIVE", data["status"])
	assert.Equal(t, "0.00", data["accrued_interest"])
	assert.Equal(t, deposit.Today().String(), data["start_date"])
	assert.Equal(t, deposit.Today().AddMonths(12).String(), data["maturity_date"])
}

func TestBookDeposit_ServerOverridesClientTerms(t *testing.T) {
	router, store := newTestServer(t)
	user := createUser(t, store)

	rec := doJSON(t, router, http.MethodPost, "/api/fd/book", map[string]any{
		"user_id":       string(user.ID),
		"amount":        5000,
		"scheme":        "Tax Saver",
		"tenure_months": 6,
		"interest_rate": 42.5,
		"start_date":    "1999-01-01",
		"maturity_date": "1999-06-01",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeEnvelope(t, rec).Data.(map[string]any)
	assert.Equal(t, "7.2", data["interest_rate"])
	assert.Equal(t, deposit.Today().String(), data["start_date"])
}

func TestBookDeposit_AmountBelowMinimum(t *testing.T) {
	router, store := newTestServer(t)
	user := createUser(t, store)

	rec := doJSON(t, router, http.MethodPost, "/api/fd/book", map[string]any{
		"user_id":       string(user.ID),
		"amount":        999.99,
		"scheme":        "Regular Saver",
		"tenure_months": 12,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid deposit amount. Minimum amount should be 1000.", env.Message)
}

func TestBookDeposit_InvalidTenure(t *testing.T) {
	router, store := newTestServer(t)
	user := createUser(t, store)

	rec := doJSON(t, router, http.MethodPost, "/api/fd/book", map[string]any{
		"user_id":       string(user.ID),
		"amount":        5000,
		"scheme":        "Regular Saver",
		"tenure_months": 0,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestBookDeposit_UnknownUser(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/fd/book", map[string]any{
		"user_id":       "ghost",
		"amount":        5000,
		"scheme":        "Regular Saver",
		"tenure_months": 12,
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestListUserDeposits_EmptyList(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/fd/user/nobody", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	data, ok := env.Data.([]any)
	require.True(t, ok, "data must be a JSON array, got %T", env.Data)
	assert.Empty(t, data)
}

func TestListUserDeposits_ReturnsBookedDeposits(t *testing.T) {
	router, store := newTestServer(t)
	user := createUser(t, store)

	for _, scheme := range []string{"Regular Saver", "Longterm Growth"} {
		rec := doJSON(t, router, http.MethodPost, "/api/fd/book", map[string]any{
			"user_id":       string(user.ID),
			"amount":        20000,
			"scheme":        scheme,
			"tenure_months": 24,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := doJSON(t, router, http.MethodGet, "/api/fd/user/"+string(user.ID), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Fixed deposits retrieved successfully.", env.Message)

	data := env.Data.([]any)
	require.Len(t, data, 2)
	for _, item := range data {
		fd := item.(map[string]any)
		assert.Equal(t, "ACTIVE", fd["status"])
		assert.Equal(t, "0.00", fd["accrued_interest"])
	}
}

func TestGetDepositInterest(t *testing.T) {
	router, store := newTestServer(t)
	user := createUser(t, store)

	rec := doJSON(t, router, http.MethodPost, "/api/fd/book", map[string]any{
		"user_id":       string(user.ID),
		"amount":        10000,
		"scheme":        "Premium Saver",
		"tenure_months": 12,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	id := decodeEnvelope(t, rec).Data.(map[string]any)["id"].(string)

	rec = doJSON(t, router, http.MethodGet, "/api/fd/"+id+"/interest", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec).Data.(map[string]any)
	assert.Equal(t, id, data["deposit_id"])
	assert.Equal(t, "0.00", data["accrued_interest"])
	assert.Equal(t, deposit.Today().String(), data["as_of"])
}

func TestGetDepositInterest_UnknownDeposit(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/fd/missing/interest", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBreakDeposit_Flow(t *testing.T) {
	router, store := newTestServer(t)
	user := createUser(t, store)

	rec := doJSON(t, router, http.MethodPost, "/api/fd/book", map[string]any{
		"user_id":       string(user.ID),
		"amount":        10000,
		"scheme":        "Premium Saver",
		"tenure_months": 12,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	id := decodeEnvelope(t, rec).Data.(map[string]any)["id"].(string)

	// Break succeeds and stamps the broken date.
	rec = doJSON(t, router, http.MethodPost, "/api/fd/"+id+"/break", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeEnvelope(t, rec).Data.(map[string]any)
	assert.Equal(t, "BROKEN", data["status"])
	assert.Equal(t, deposit.Today().String(), data["broken_date"])

	// Breaking again conflicts.
	rec = doJSON(t, router, http.MethodPost, "/api/fd/"+id+"/break", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Maturing a broken deposit conflicts too.
	rec = doJSON(t, router, http.MethodPost, "/api/fd/"+id+"/mature", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestMatureDeposit_BeforeMaturityConflicts(t *testing.T) {
	router, store := newTestServer(t)
	user := createUser(t, store)

	rec := doJSON(t, router, http.MethodPost, "/api/fd/book", map[string]any{
		"user_id":       string(user.ID),
		"amount":        10000,
		"scheme":        "Premium Saver",
		"tenure_months": 12,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	id := decodeEnvelope(t, rec).Data.(map[string]any)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/api/fd/"+id+"/mature", nil)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestUserEndpoints(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users", map[string]any{
		"name":  "Asha Rao",
		"email": "asha@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeEnvelope(t, rec).Data.(map[string]any)
	id := data["id"].(string)
	require.NotEmpty(t, id)

	rec = doJSON(t, router, http.MethodGet, "/api/users/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Asha Rao", decodeEnvelope(t, rec).Data.(map[string]any)["name"])

	rec = doJSON(t, router, http.MethodGet, "/api/users/ghost", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateUser_MissingName(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users", map[string]any{"email": "x@example.com"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
