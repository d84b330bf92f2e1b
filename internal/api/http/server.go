package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"prestige-rentals-backend/internal/security"
	"prestige-rentals-backend/internal/service"
)

// NewRouter wires the JSON API. Routes mirror the operations the engine
// exposes; everything mutating goes through the auth middleware so every
// service call receives an explicit principal.
func NewRouter(
	tokens security.TokenManager,
	authSvc service.AuthService,
	rentalSvc service.RentalService,
	fleetSvc service.FleetService,
) *mux.Router {
	authHandler := NewAuthHandler(authSvc)
	rentalHandler := NewRentalHandler(rentalSvc)
	fleetHandler := NewFleetHandler(fleetSvc)
	auth := NewAuthMiddleware(tokens)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.LoginCustomer).Methods(http.MethodPost)
	api.HandleFunc("/auth/employee/login", authHandler.LoginEmployee).Methods(http.MethodPost)

	// Public fleet reads
	api.HandleFunc("/cars", fleetHandler.ListAvailableCars).Methods(http.MethodGet)
	api.HandleFunc("/cars/{carId:[0-9]+}", fleetHandler.GetCar).Methods(http.MethodGet)
	api.HandleFunc("/cars/{carId:[0-9]+}/availability", rentalHandler.CheckAvailability).Methods(http.MethodGet)
	api.HandleFunc("/addons", fleetHandler.ListAddons).Methods(http.MethodGet)

	// Rentals (authenticated)
	api.HandleFunc("/rentals", auth.Require(rentalHandler.CreateRental)).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{rentalId:[0-9]+}", auth.Require(rentalHandler.GetRental)).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{rentalId:[0-9]+}/return", auth.Require(rentalHandler.ReturnRental)).Methods(http.MethodPut)
	api.HandleFunc("/rentals/{rentalId:[0-9]+}", auth.Require(rentalHandler.DeleteRental)).Methods(http.MethodDelete)
	api.HandleFunc("/customers/rentals", auth.Require(rentalHandler.ListMyRentals)).Methods(http.MethodGet)
	api.HandleFunc("/customers/active-rental", auth.Require(rentalHandler.GetMyActiveRental)).Methods(http.MethodGet)

	// Fleet administration (employee only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/cars", auth.RequireEmployee(fleetHandler.AddCar)).Methods(http.MethodPost)
	admin.HandleFunc("/maintenance", auth.RequireEmployee(fleetHandler.ScheduleMaintenance)).Methods(http.MethodPost)
	admin.HandleFunc("/maintenance/{maintenanceId:[0-9]+}/complete", auth.RequireEmployee(fleetHandler.CompleteMaintenance)).Methods(http.MethodPut)
	admin.HandleFunc("/maintenance/history/{carId:[0-9]+}", auth.RequireEmployee(fleetHandler.MaintenanceHistory)).Methods(http.MethodGet)
	admin.HandleFunc("/dashboard/metrics", auth.RequireEmployee(fleetHandler.FleetMetrics)).Methods(http.MethodGet)

	return r
}
