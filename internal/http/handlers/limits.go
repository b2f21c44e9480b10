package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/konanauto/garage-booking/internal/catalog"
	"github.com/konanauto/garage-booking/pkg/logging"
)

// LimitsHandler exposes the staff settings for daily caps and the pickup
// quota.
type LimitsHandler struct {
	store  *catalog.Store
	logger *logging.Logger
}

func NewLimitsHandler(store *catalog.Store, logger *logging.Logger) *LimitsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &LimitsHandler{store: store, logger: logger}
}

// GetLimits returns the current caps.
// GET /admin/limits
func (h *LimitsHandler) GetLimits(w http.ResponseWriter, r *http.Request) {
	limits, err := h.store.Get(r.Context())
	if err != nil {
		h.logger.Error("limits read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "limits lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, limits)
}

// UpdateLimits replaces the caps.
// PUT /admin/limits
func (h *LimitsHandler) UpdateLimits(w http.ResponseWriter, r *http.Request) {
	var limits catalog.Limits
	if err := json.NewDecoder(r.Body).Decode(&limits); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if limits.PickupQuota < 0 {
		writeError(w, http.StatusBadRequest, "pickup quota must not be negative")
		return
	}
	for name, perDay := range limits.MaxPerDay {
		if perDay < 0 {
			writeError(w, http.StatusBadRequest, "cap for "+name+" must not be negative")
			return
		}
	}

	if err := h.store.Set(r.Context(), &limits); err != nil {
		h.logger.Error("limits write failed", "error", err)
		writeError(w, http.StatusInternalServerError, "limits update failed")
		return
	}
	writeJSON(w, http.StatusOK, &limits)
}
