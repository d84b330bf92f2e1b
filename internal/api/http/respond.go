package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"prestige-rentals-backend/internal/domain"
	"prestige-rentals-backend/internal/logger"
	"prestige-rentals-backend/internal/service"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// respondError translates the engine's error taxonomy into HTTP statuses.
// Anything outside the taxonomy is an infrastructure failure: logged in
// full, surfaced generically.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidDateRange):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrCarUnavailable),
		errors.Is(err, domain.ErrRentalNotStarted),
		errors.Is(err, domain.ErrRentalNotActive),
		errors.Is(err, domain.ErrRentalStillActive),
		errors.Is(err, domain.ErrCarHasActiveRental),
		errors.Is(err, domain.ErrMaintenanceNotOpen),
		errors.Is(err, domain.ErrIllegalCarTransition),
		errors.Is(err, domain.ErrRecordInUse):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		logger.Error("Request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "operation failed, please try again"})
	}
}
