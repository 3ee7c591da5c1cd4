// internal/api/surfacetypes/handlers.go
package surfacetypes

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
	service     *club.SurfaceTypeService
	serviceOnce sync.Once
)

const queryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(surfaceTypes *club.SurfaceTypeService) {
	if surfaceTypes == nil {
		return
	}
	serviceOnce.Do(func() {
		service = surfaceTypes
	})
}

// POST /api/surfaces
func HandleSurfaceTypeCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Surface type service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req club.SurfaceTypeRequest
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
		logger.Error().Err(err).Int64("surface_type_id", created.ID).Msg("Failed to write surface type response")
	}
}

// GET /api/surfaces
func HandleSurfaceTypesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Surface type service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	surfaceTypes, err := svc.ListAll(ctx)
	if err != nil {
		apiutil.WriteDomainError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, surfaceTypes); err != nil {
		logger.Error().Err(err).Msg("Failed to write surface type list response")
	}
}

// GET /api/surfaces/{id}
func HandleSurfaceTypeGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Surface type service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid surface type ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	surfaceType, err := svc.GetByID(ctx, id)
	if err != nil {
		apiutil.WriteDomainError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, surfaceType); err != nil {
		logger.Error().Err(err).Int64("surface_type_id", id).Msg("Failed to write surface type response")
	}
}

// PUT /api/surfaces/{id}
func HandleSurfaceTypeUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Surface type service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid surface type ID", http.StatusBadRequest)
		return
	}

	var req club.SurfaceTypeRequest
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
		logger.Error().Err(err).Int64("surface_type_id", id).Msg("Failed to write surface type response")
	}
}

// DELETE /api/surfaces/{id}
func HandleSurfaceTypeDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Surface type service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid surface type ID", http.StatusBadRequest)
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

func loadService() *club.SurfaceTypeService {
	return service
}
