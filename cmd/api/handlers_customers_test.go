package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomersLifecycle(t *testing.T) {
	env := NewTestApplication(t)
	user := env.token(t, false)
	admin := env.token(t, true)

	rec := env.do(t, http.MethodGet, "/api/customers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/customers", user, customerRequest{Name: "John", Phone: "12"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeResponse(t, rec).Data["errors"], "phone")

	rec = env.do(t, http.MethodPost, "/api/customers", user, customerRequest{Name: "John", Phone: "12345", IsGold: true})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	customer := decodeResponse(t, rec).Data["customer"].(map[string]any)
	assert.Equal(t, true, customer["isGold"])
	path := "/api/customers/" + customer["id"].(string)

	rec = env.do(t, http.MethodPut, path, user, customerRequest{Name: "Johnny", Phone: "54321"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Johnny", decodeResponse(t, rec).Data["customer"].(map[string]any)["name"])

	rec = env.do(t, http.MethodDelete, path, user, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(t, http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodGet, path, user, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
