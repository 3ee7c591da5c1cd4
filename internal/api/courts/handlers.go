// internal/api/courts/handlers.go
package courts

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
	service     *club.CourtService
	serviceOnce sync.Once
)

const queryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(courts *club.CourtService) {
	if courts == nil {
		return
	}
	serviceOnce.Do(func() {
		service = courts
	})
}

// POST /api/courts
func HandleCourtCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Court service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req club.CourtRequest
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
		logger.Error().Err(err).Int64("court_id", created.ID).Msg("Failed to write court response")
	}
}

// GET /api/courts
func HandleCourtsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Court service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	courts, err := svc.ListAll(ctx)
	if err != nil {
		apiutil.WriteDomainError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, courts); err != nil {
		logger.Error().Err(err).Msg("Failed to write court list response")
	}
}

// GET /api/courts/{id}
func HandleCourtGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Court service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid court ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	court, err := svc.GetByID(ctx, id)
	if err != nil {
		apiutil.WriteDomainError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, court); err != nil {
		logger.Error().Err(err).Int64("court_id", id).Msg("Failed to write court response")
	}
}

// PUT /api/courts/{id}
func HandleCourtUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Court service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid court ID", http.StatusBadRequest)
		return
	}

	var req club.CourtRequest
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
		logger.Error().Err(err).Int64("court_id", id).Msg("Failed to write court response")
	}
}

// DELETE /api/courts/{id}
func HandleCourtDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Court service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid court ID", http.StatusBadRequest)
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

func loadService() *club.CourtService {
	return service
}
