// internal/club/surfaces.go
package club

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/McNabAndy/tennisclub-reservation-api/internal/db"
)

type SurfaceTypeRequest struct {
	Name        string          `json:"name"`
	MinutePrice decimal.Decimal `json:"minutePrice"`
}

// SurfaceTypeService manages surface types and the two-level soft-delete
// cascade: surface type, then its courts, then each court's reservations.
type SurfaceTypeService struct {
	store *db.DB
}

func NewSurfaceTypeService(store *db.DB) *SurfaceTypeService {
	return &SurfaceTypeService{store: store}
}

func (s *SurfaceTypeService) Create(ctx context.Context, req SurfaceTypeRequest) (SurfaceTypeView, error) {
	if err := validateSurfaceTypeRequest(req); err != nil {
		return SurfaceTypeView{}, err
	}

	surfaceType, err := s.store.Queries.CreateSurfaceType(ctx, db.CreateSurfaceTypeParams{
		Name:        req.Name,
		MinutePrice: req.MinutePrice,
	})
	if err != nil {
		return SurfaceTypeView{}, fmt.Errorf("error creating surface type: %w", err)
	}
	return newSurfaceTypeView(surfaceType), nil
}

// GetByID returns one live surface type or ErrSurfaceTypeNotFound.
func (s *SurfaceTypeService) GetByID(ctx context.Context, id int64) (SurfaceTypeView, error) {
	surfaceType, err := s.store.Queries.GetSurfaceTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SurfaceTypeView{}, ErrSurfaceTypeNotFound
		}
		return SurfaceTypeView{}, fmt.Errorf("error loading surface type %d: %w", id, err)
	}
	return newSurfaceTypeView(surfaceType), nil
}

// ListAll returns every live surface type; empty is an empty list.
func (s *SurfaceTypeService) ListAll(ctx context.Context) ([]SurfaceTypeView, error) {
	surfaceTypes, err := s.store.Queries.ListSurfaceTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing surface types: %w", err)
	}

	views := make([]SurfaceTypeView, 0, len(surfaceTypes))
	for _, surfaceType := range surfaceTypes {
		views = append(views, newSurfaceTypeView(surfaceType))
	}
	return views, nil
}

func (s *SurfaceTypeService) Update(ctx context.Context, id int64, req SurfaceTypeRequest) (SurfaceTypeView, error) {
	if err := validateSurfaceTypeRequest(req); err != nil {
		return SurfaceTypeView{}, err
	}

	var view SurfaceTypeView
	err := s.store.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries

		surfaceType, err := q.GetSurfaceTypeByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrSurfaceTypeNotFound
			}
			return fmt.Errorf("error loading surface type %d: %w", id, err)
		}

		surfaceType.Name = req.Name
		surfaceType.MinutePrice = req.MinutePrice
		updated, err := q.UpdateSurfaceType(ctx, surfaceType)
		if err != nil {
			return fmt.Errorf("error updating surface type %d: %w", id, err)
		}

		view = newSurfaceTypeView(updated)
		return nil
	})
	return view, err
}

// Delete soft-deletes a surface type and cascades court by court: each
// court is marked deleted along with its reservations. The whole fan-out
// commits in one transaction, so a crash cannot leave a half-cascaded
// surface type behind.
func (s *SurfaceTypeService) Delete(ctx context.Context, id int64) error {
	return s.store.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries

		surfaceType, err := q.GetSurfaceTypeByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrSurfaceTypeNotFound
			}
			return fmt.Errorf("error loading surface type %d: %w", id, err)
		}

		surfaceType.Deleted = true
		if _, err := q.UpdateSurfaceType(ctx, surfaceType); err != nil {
			return fmt.Errorf("error deleting surface type %d: %w", id, err)
		}

		courts, err := q.ListCourtsBySurfaceType(ctx, id)
		if err != nil {
			return fmt.Errorf("error loading courts for surface type %d: %w", id, err)
		}
		for _, court := range courts {
			if err := cascadeDeleteCourt(ctx, q, court.ID); err != nil {
				return err
			}
		}

		log.Ctx(ctx).Info().
			Int64("surface_type_id", id).
			Int("courts", len(courts)).
			Msg("Surface type soft-deleted with courts")
		return nil
	})
}

func validateSurfaceTypeRequest(req SurfaceTypeRequest) error {
	switch {
	case req.Name == "":
		return ValidationError{Reason: "name is required"}
	case !req.MinutePrice.IsPositive():
		return ValidationError{Reason: "minute price must be greater than zero"}
	}
	return nil
}
