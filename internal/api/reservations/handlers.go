// internal/api/reservations/handlers.go
package reservations

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/McNabAndy/tennisclub-reservation-api/internal/api/apiutil"
	"github.com/McNabAndy/tennisclub-reservation-api/internal/club"
)

var (
	service     *club.ReservationService
	serviceOnce sync.Once
)

const queryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(reservations *club.ReservationService) {
	if reservations == nil {
		return
	}
	serviceOnce.Do(func() {
		service = reservations
	})
}

// POST /api/reservations
func HandleReservationCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Reservation service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req club.ReservationRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	created, err := svc.Create(ctx, req)
	if err != nil {
		apiutil.WriteDomainError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, created); err != nil {
		logger.Error().Err(err).Int64("reservation_id", created.ID).Msg("Failed to write reservation response")
	}
}

// GET /api/reservations
func HandleReservationsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Reservation service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	reservations, err := svc.ListAll(ctx)
	if err != nil {
		apiutil.WriteDomainError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, reservations); err != nil {
		logger.Error().Err(err).Msg("Failed to write reservation list response")
	}
}

// GET /api/reservations/{id}
func HandleReservationGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Reservation service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	reservation, err := svc.GetByID(ctx, id)
	if err != nil {
		apiutil.WriteDomainError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, reservation); err != nil {
		logger.Error().Err(err).Int64("reservation_id", id).Msg("Failed to write reservation response")
	}
}

// GET /api/reservations/court/{number}
func HandleReservationsByCourt(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Reservation service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	courtNumber, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("number")), 10, 64)
	if err != nil || courtNumber <= 0 {
		http.Error(w, "Invalid court number", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	reservations, err := svc.ListByCourtNumber(ctx, courtNumber)
	if err != nil {
		apiutil.WriteDomainError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, reservations); err != nil {
		logger.Error().Err(err).Int64("court_number", courtNumber).Msg("Failed to write reservation list response")
	}
}

// GET /api/reservations/phone/{phone}?futureOnly=true
func HandleReservationsByPhone(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Reservation service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	phone := strings.TrimSpace(r.PathValue("phone"))
	if phone == "" {
		http.Error(w, "Phone number is required", http.StatusBadRequest)
		return
	}
	futureOnly := parseBoolParam(r.URL.Query().Get("futureOnly"))

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	reservations, err := svc.ListByPhone(ctx, phone, futureOnly)
	if err != nil {
		apiutil.WriteDomainError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, reservations); err != nil {
		logger.Error().Err(err).Msg("Failed to write reservation list response")
	}
}

// PUT /api/reservations/{id}
func HandleReservationUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Reservation service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	var req club.ReservationRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	updated, err := svc.Update(ctx, id, req)
	if err != nil {
		apiutil.WriteDomainError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("reservation_id", id).Msg("Failed to write reservation response")
	}
}

// DELETE /api/reservations/{id}
func HandleReservationDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Reservation service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	if err := svc.Delete(ctx, id); err != nil {
		apiutil.WriteDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func idFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}

func parseBoolParam(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

func loadService() *club.ReservationService {
	return service
}
