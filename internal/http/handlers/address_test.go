package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/konanauto/garage-booking/internal/address"
)

func newAddressHandler(t *testing.T, handler http.HandlerFunc) *AddressHandler {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	client := address.NewClient(address.Config{BaseURL: ts.URL, HTTPClient: ts.Client()}, nil)
	return NewAddressHandler(client, nil)
}

func TestAddressLookup(t *testing.T) {
	h := newAddressHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"results":[{"zipcode":"6650845","address1":"兵庫県","address2":"宝塚市","address3":"栄町"}]}`))
	})

	rec := httptest.NewRecorder()
	h.Lookup(rec, httptest.NewRequest(http.MethodGet, "/api/address?postal_code=665-0845", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "兵庫県宝塚市栄町")
}

func TestAddressLookupNotFound(t *testing.T) {
	h := newAddressHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"results":null}`))
	})

	rec := httptest.NewRecorder()
	h.Lookup(rec, httptest.NewRequest(http.MethodGet, "/api/address?postal_code=0000000", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddressLookupMissingParam(t *testing.T) {
	h := newAddressHandler(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	h.Lookup(rec, httptest.NewRequest(http.MethodGet, "/api/address", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
