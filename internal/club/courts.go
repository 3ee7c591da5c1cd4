// internal/club/courts.go
package club

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/McNabAndy/tennisclub-reservation-api/internal/db"
)

type CourtRequest struct {
	CourtNumber   int64 `json:"courtNumber"`
	SurfaceTypeID int64 `json:"surfaceTypeId"`
}

// CourtService manages courts: creation with number uniqueness among live
// courts, lookups, updates, and soft deletion cascading to the court's
// reservations.
type CourtService struct {
	store *db.DB
}

func NewCourtService(store *db.DB) *CourtService {
	return &CourtService{store: store}
}

// Create adds a court. The number must be free among non-deleted courts
// (a deleted court's number may be reused) and the surface type must exist.
func (s *CourtService) Create(ctx context.Context, req CourtRequest) (CourtView, error) {
	if err := validateCourtRequest(req); err != nil {
		return CourtView{}, err
	}

	var view CourtView
	err := s.store.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries

		taken, err := q.GetCourtByNumber(ctx, req.CourtNumber)
		if err == nil {
			return fmt.Errorf("court number %d: %w", taken.CourtNumber, ErrCourtNumberExists)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("error checking court number %d: %w", req.CourtNumber, err)
		}

		surfaceType, err := q.GetSurfaceTypeByID(ctx, req.SurfaceTypeID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrSurfaceTypeNotFound
			}
			return fmt.Errorf("error loading surface type %d: %w", req.SurfaceTypeID, err)
		}

		court, err := q.CreateCourt(ctx, db.CreateCourtParams{
			CourtNumber:   req.CourtNumber,
			SurfaceTypeID: req.SurfaceTypeID,
		})
		if err != nil {
			return fmt.Errorf("error creating court: %w", err)
		}

		view = newCourtView(court, surfaceType)
		return nil
	})
	return view, err
}

// GetByID returns one live court or ErrCourtNotFound.
func (s *CourtService) GetByID(ctx context.Context, id int64) (CourtView, error) {
	q := s.store.Queries

	court, err := q.GetCourtByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CourtView{}, ErrCourtNotFound
		}
		return CourtView{}, fmt.Errorf("error loading court %d: %w", id, err)
	}

	surfaceType, err := q.GetSurfaceTypeByID(ctx, court.SurfaceTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CourtView{}, ErrSurfaceTypeNotFound
		}
		return CourtView{}, fmt.Errorf("error loading surface type %d: %w", court.SurfaceTypeID, err)
	}

	return newCourtView(court, surfaceType), nil
}

// ListAll returns every live court; empty is an empty list, not an error.
func (s *CourtService) ListAll(ctx context.Context) ([]CourtView, error) {
	q := s.store.Queries

	courts, err := q.ListCourts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courts: %w", err)
	}

	surfaceTypes := make(map[int64]db.SurfaceType)
	views := make([]CourtView, 0, len(courts))
	for _, court := range courts {
		surfaceType, ok := surfaceTypes[court.SurfaceTypeID]
		if !ok {
			surfaceType, err = q.GetSurfaceTypeByID(ctx, court.SurfaceTypeID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return nil, ErrSurfaceTypeNotFound
				}
				return nil, fmt.Errorf("error loading surface type %d: %w", court.SurfaceTypeID, err)
			}
			surfaceTypes[court.SurfaceTypeID] = surfaceType
		}
		views = append(views, newCourtView(court, surfaceType))
	}
	return views, nil
}

// Update renumbers a court or moves it to another surface type. A number
// held by a different live court is rejected.
func (s *CourtService) Update(ctx context.Context, id int64, req CourtRequest) (CourtView, error) {
	if err := validateCourtRequest(req); err != nil {
		return CourtView{}, err
	}

	var view CourtView
	err := s.store.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries

		court, err := q.GetCourtByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCourtNotFound
			}
			return fmt.Errorf("error loading court %d: %w", id, err)
		}

		if req.CourtNumber != court.CourtNumber {
			taken, err := q.GetCourtByNumber(ctx, req.CourtNumber)
			if err == nil && taken.ID != id {
				return fmt.Errorf("court number %d: %w", req.CourtNumber, ErrCourtNumberExists)
			}
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("error checking court number %d: %w", req.CourtNumber, err)
			}
		}

		surfaceType, err := q.GetSurfaceTypeByID(ctx, req.SurfaceTypeID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrSurfaceTypeNotFound
			}
			return fmt.Errorf("error loading surface type %d: %w", req.SurfaceTypeID, err)
		}

		court.CourtNumber = req.CourtNumber
		court.SurfaceTypeID = req.SurfaceTypeID
		updated, err := q.UpdateCourt(ctx, court)
		if err != nil {
			return fmt.Errorf("error updating court %d: %w", id, err)
		}

		view = newCourtView(updated, surfaceType)
		return nil
	})
	return view, err
}

// Delete soft-deletes a court and every live reservation on it. The mark
// and the fan-out commit in one transaction.
func (s *CourtService) Delete(ctx context.Context, id int64) error {
	return s.store.RunInTx(ctx, func(txdb *db.DB) error {
		return cascadeDeleteCourt(ctx, txdb.Queries, id)
	})
}

// cascadeDeleteCourt marks a court deleted, then its reservations. It runs
// inside the caller's transaction so the surface type cascade can reuse it.
// An already-deleted court reports ErrCourtNotFound, which makes cascade
// retries idempotent per level.
func cascadeDeleteCourt(ctx context.Context, q *db.Queries, id int64) error {
	court, err := q.GetCourtByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCourtNotFound
		}
		return fmt.Errorf("error loading court %d: %w", id, err)
	}

	court.Deleted = true
	if _, err := q.UpdateCourt(ctx, court); err != nil {
		return fmt.Errorf("error deleting court %d: %w", id, err)
	}

	reservations, err := q.ListReservationsByCourtNumber(ctx, court.CourtNumber)
	if err != nil {
		return fmt.Errorf("error loading reservations for court %d: %w", court.CourtNumber, err)
	}
	for _, reservation := range reservations {
		if _, err := q.SoftDeleteReservation(ctx, reservation.ID); err != nil {
			return fmt.Errorf("error deleting reservation %d: %w", reservation.ID, err)
		}
	}

	log.Ctx(ctx).Info().
		Int64("court_id", id).
		Int64("court_number", court.CourtNumber).
		Int("reservations", len(reservations)).
		Msg("Court soft-deleted with reservations")
	return nil
}

func validateCourtRequest(req CourtRequest) error {
	switch {
	case req.CourtNumber <= 0:
		return ValidationError{Reason: "court number must be a positive integer"}
	case req.SurfaceTypeID <= 0:
		return ValidationError{Reason: "surface type id must be a positive integer"}
	}
	return nil
}
