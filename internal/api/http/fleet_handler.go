package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"prestige-rentals-backend/internal/domain"
	"prestige-rentals-backend/internal/service"
)

type FleetHandler struct {
	fleetSvc service.FleetService
}

func NewFleetHandler(fleetSvc service.FleetService) *FleetHandler {
	return &FleetHandler{fleetSvc: fleetSvc}
}

type addCarRequest struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int32  `json:"year"`
	DailyRate    string `json:"daily_rate"`
	HourlyRate   string `json:"hourly_rate"`
	WeeklyRate   string `json:"weekly_rate"`
	MonthlyRate  string `json:"monthly_rate"`
	LicensePlate string `json:"license_plate"`
	Mileage      int32  `json:"mileage"`
}

func (h *FleetHandler) AddCar(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)

	var req addCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	daily, err := decimal.NewFromString(req.DailyRate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid daily_rate"})
		return
	}
	hourly := parseRate(req.HourlyRate)
	weekly := parseRate(req.WeeklyRate)
	monthly := parseRate(req.MonthlyRate)

	car := &domain.Car{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		DailyRate:    daily,
		HourlyRate:   hourly,
		WeeklyRate:   weekly,
		MonthlyRate:  monthly,
		LicensePlate: req.LicensePlate,
		Mileage:      req.Mileage,
		Status:       domain.CarStatusAvailable,
	}
	if err := h.fleetSvc.AddCar(r.Context(), p, car); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"success": true, "car": car})
}

func (h *FleetHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	carID, err := pathID(r, "carId")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid car id"})
		return
	}
	car, err := h.fleetSvc.GetCar(r.Context(), carID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "car": car})
}

func (h *FleetHandler) ListAvailableCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.fleetSvc.ListAvailableCars(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "cars": cars})
}

func (h *FleetHandler) ListAddons(w http.ResponseWriter, r *http.Request) {
	addons, err := h.fleetSvc.ListAddons(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "addons": addons})
}

type scheduleMaintenanceRequest struct {
	CarID       int32  `json:"car_id"`
	ServiceDate string `json:"service_date"`
	ServiceType string `json:"service_type"`
	Notes       string `json:"notes"`
	Cost        string `json:"cost"`
	Mileage     int32  `json:"mileage_at_service"`
}

func (h *FleetHandler) ScheduleMaintenance(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)

	var req scheduleMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	serviceDate, err := time.Parse(dateLayout, req.ServiceDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid service_date, expected yyyy-mm-dd"})
		return
	}
	var cost *decimal.Decimal
	if req.Cost != "" {
		c, err := decimal.NewFromString(req.Cost)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid cost"})
			return
		}
		cost = &c
	}

	record, carStatus, err := h.fleetSvc.ScheduleMaintenance(r.Context(), p, service.ScheduleMaintenanceInput{
		CarID:       req.CarID,
		ServiceDate: serviceDate,
		ServiceType: req.ServiceType,
		Notes:       req.Notes,
		Cost:        cost,
		Mileage:     req.Mileage,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"success":        true,
		"maintenance_id": record.ID,
		"car_status":     carStatus,
	})
}

func (h *FleetHandler) CompleteMaintenance(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	maintenanceID, err := pathID(r, "maintenanceId")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid maintenance id"})
		return
	}

	carStatus, err := h.fleetSvc.CompleteMaintenance(r.Context(), p, maintenanceID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "car_status": carStatus})
}

func (h *FleetHandler) MaintenanceHistory(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	carID, err := pathID(r, "carId")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid car id"})
		return
	}
	records, err := h.fleetSvc.MaintenanceHistory(r.Context(), p, carID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "maintenance": records})
}

func (h *FleetHandler) FleetMetrics(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	metrics, err := h.fleetSvc.FleetMetrics(r.Context(), p)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "metrics": metrics})
}

func parseRate(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
