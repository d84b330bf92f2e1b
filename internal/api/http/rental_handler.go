package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"prestige-rentals-backend/internal/domain"
	"prestige-rentals-backend/internal/service"
)

const dateLayout = "2006-01-02"

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

type createRentalRequest struct {
	CarID      int32   `json:"car_id"`
	PickupDate string  `json:"pickup_date"`
	DueDate    string  `json:"due_date"`
	AddonIDs   []int32 `json:"addon_ids"`
}

func (h *RentalHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)

	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	pickup, err := time.Parse(dateLayout, req.PickupDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid pickup_date, expected yyyy-mm-dd"})
		return
	}
	due, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid due_date, expected yyyy-mm-dd"})
		return
	}

	// Customers book for themselves; the principal id is the customer id.
	confirmation, err := h.rentalSvc.CreateRental(r.Context(), p, service.CreateRentalInput{
		CustomerID: p.ID,
		CarID:      req.CarID,
		PickupDate: pickup,
		DueDate:    due,
		AddonIDs:   req.AddonIDs,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success":    true,
		"rental_id":  confirmation.RentalID,
		"total_cost": confirmation.Breakdown.Total,
		"breakdown":  confirmation.Breakdown,
	})
}

func (h *RentalHandler) ReturnRental(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	rentalID, err := pathID(r, "rentalId")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}

	result, err := h.rentalSvc.ReturnRental(r.Context(), p, rentalID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"fee_applied": result.FeeApplied,
		"car_status":  result.CarStatus,
		"rental":      result.Rental,
	})
}

func (h *RentalHandler) DeleteRental(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	rentalID, err := pathID(r, "rentalId")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}

	if err := h.rentalSvc.DeleteRental(r.Context(), p, rentalID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Rental record deleted."})
}

func (h *RentalHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	carID, err := pathID(r, "carId")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid car id"})
		return
	}
	pickup, err := time.Parse(dateLayout, r.URL.Query().Get("pickup_date"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid pickup_date, expected yyyy-mm-dd"})
		return
	}
	due, err := time.Parse(dateLayout, r.URL.Query().Get("due_date"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid due_date, expected yyyy-mm-dd"})
		return
	}

	available, err := h.rentalSvc.CheckAvailability(r.Context(), carID, pickup, due)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "available": available})
}

func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	rentalID, err := pathID(r, "rentalId")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}

	rental, addons, payments, err := h.rentalSvc.GetRental(r.Context(), p, rentalID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"rental":   rental,
		"addons":   addons,
		"payments": payments,
	})
}

func (h *RentalHandler) ListMyRentals(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	rentals, total, err := h.rentalSvc.ListCustomerRentals(r.Context(), p, p.ID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "rentals": rentals, "total": total})
}

func (h *RentalHandler) GetMyActiveRental(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	if p.Role != domain.RoleCustomer {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "customer access required"})
		return
	}

	active, err := h.rentalSvc.GetActiveRental(r.Context(), p, p.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if active == nil {
		respondJSON(w, http.StatusOK, map[string]any{"success": true, "rental": nil})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"rental":         active.Rental,
		"estimated_cost": active.EstimatedCost,
	})
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}
