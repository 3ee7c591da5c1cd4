// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/McNabAndy/tennisclub-reservation-api/internal/api"
	"github.com/McNabAndy/tennisclub-reservation-api/internal/api/courts"
	"github.com/McNabAndy/tennisclub-reservation-api/internal/api/reservations"
	"github.com/McNabAndy/tennisclub-reservation-api/internal/api/surfacetypes"
	"github.com/McNabAndy/tennisclub-reservation-api/internal/club"
	"github.com/McNabAndy/tennisclub-reservation-api/internal/config"
	"github.com/McNabAndy/tennisclub-reservation-api/internal/db"
)

func newServer(cfg *config.Config, database *db.DB, policy club.Policy) *http.Server {
	reservations.InitHandlers(club.NewReservationService(database, policy))
	courts.InitHandlers(club.NewCourtService(database))
	surfacetypes.InitHandlers(club.NewSurfaceTypeService(database))

	router := http.NewServeMux()
	registerRoutes(router)

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Reservation routes
	mux.HandleFunc("POST /api/reservations", reservations.HandleReservationCreate)
	mux.HandleFunc("GET /api/reservations", reservations.HandleReservationsList)
	mux.HandleFunc("GET /api/reservations/{id}", reservations.HandleReservationGet)
	mux.HandleFunc("PUT /api/reservations/{id}", reservations.HandleReservationUpdate)
	mux.HandleFunc("DELETE /api/reservations/{id}", reservations.HandleReservationDelete)
	mux.HandleFunc("GET /api/reservations/court/{number}", reservations.HandleReservationsByCourt)
	mux.HandleFunc("GET /api/reservations/phone/{phone}", reservations.HandleReservationsByPhone)

	// Court routes
	mux.HandleFunc("POST /api/courts", courts.HandleCourtCreate)
	mux.HandleFunc("GET /api/courts", courts.HandleCourtsList)
	mux.HandleFunc("GET /api/courts/{id}", courts.HandleCourtGet)
	mux.HandleFunc("PUT /api/courts/{id}", courts.HandleCourtUpdate)
	mux.HandleFunc("DELETE /api/courts/{id}", courts.HandleCourtDelete)

	// Surface type routes
	mux.HandleFunc("POST /api/surfaces", surfacetypes.HandleSurfaceTypeCreate)
	mux.HandleFunc("GET /api/surfaces", surfacetypes.HandleSurfaceTypesList)
	mux.HandleFunc("GET /api/surfaces/{id}", surfacetypes.HandleSurfaceTypeGet)
	mux.HandleFunc("PUT /api/surfaces/{id}", surfacetypes.HandleSurfaceTypeUpdate)
	mux.HandleFunc("DELETE /api/surfaces/{id}", surfacetypes.HandleSurfaceTypeDelete)
}
