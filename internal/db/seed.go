// internal/db/seed.go
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Seed inserts the starter surface types and courts when the database is
// empty. Running it against a populated database is a no-op, so it is safe
// to call on every startup.
func (db *DB) Seed(ctx context.Context) error {
	existing, err := db.Queries.ListSurfaceTypes(ctx)
	if err != nil {
		return fmt.Errorf("error checking seed state: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	return db.RunInTx(ctx, func(txdb *DB) error {
		clay, err := txdb.Queries.CreateSurfaceType(ctx, CreateSurfaceTypeParams{
			Name:        "Clay",
			MinutePrice: decimal.RequireFromString("1.5"),
		})
		if err != nil {
			return fmt.Errorf("error seeding surface types: %w", err)
		}
		grass, err := txdb.Queries.CreateSurfaceType(ctx, CreateSurfaceTypeParams{
			Name:        "Grass",
			MinutePrice: decimal.RequireFromString("2.5"),
		})
		if err != nil {
			return fmt.Errorf("error seeding surface types: %w", err)
		}

		courts := []CreateCourtParams{
			{CourtNumber: 101, SurfaceTypeID: clay.ID},
			{CourtNumber: 102, SurfaceTypeID: clay.ID},
			{CourtNumber: 103, SurfaceTypeID: clay.ID},
			{CourtNumber: 104, SurfaceTypeID: grass.ID},
		}
		for _, params := range courts {
			if _, err := txdb.Queries.CreateCourt(ctx, params); err != nil {
				return fmt.Errorf("error seeding court %d: %w", params.CourtNumber, err)
			}
		}

		log.Info().Int("surface_types", 2).Int("courts", len(courts)).Msg("Seeded initial club data")
		return nil
	})
}
