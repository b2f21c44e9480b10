package handlers

import (
	"errors"
	"net/http"

	"github.com/konanauto/garage-booking/internal/address"
	"github.com/konanauto/garage-booking/pkg/logging"
)

// AddressHandler proxies postal-code lookups so the form never talks to
// zipcloud directly.
type AddressHandler struct {
	client *address.Client
	logger *logging.Logger
}

func NewAddressHandler(client *address.Client, logger *logging.Logger) *AddressHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AddressHandler{client: client, logger: logger}
}

// Lookup handles GET /api/address?postal_code=6650845.
func (h *AddressHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("postal_code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "postal_code is required")
		return
	}

	result, err := h.client.Lookup(r.Context(), code)
	if err != nil {
		if errors.Is(err, address.ErrNotFound) {
			writeError(w, http.StatusNotFound, "postal code not found")
			return
		}
		h.logger.Error("address lookup failed", "error", err, "postal_code", code)
		writeError(w, http.StatusBadGateway, "address lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
