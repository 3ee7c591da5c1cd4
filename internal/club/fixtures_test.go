package club

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/McNabAndy/tennisclub-reservation-api/internal/db"
	"github.com/McNabAndy/tennisclub-reservation-api/internal/testutil"
)

// testNow pins "now" for the booking services so policy checks are
// deterministic. Court 101 sits on clay, court 104 on grass.
var testNow = time.Date(2030, 5, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	database   *db.DB
	clay       db.SurfaceType
	grass      db.SurfaceType
	clayCourt  db.Court
	grassCourt db.Court
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	q := database.Queries

	clay, err := q.CreateSurfaceType(ctx, db.CreateSurfaceTypeParams{
		Name:        "Clay",
		MinutePrice: decimal.RequireFromString("1.5"),
	})
	if err != nil {
		t.Fatalf("create clay: %v", err)
	}
	grass, err := q.CreateSurfaceType(ctx, db.CreateSurfaceTypeParams{
		Name:        "Grass",
		MinutePrice: decimal.RequireFromString("2.5"),
	})
	if err != nil {
		t.Fatalf("create grass: %v", err)
	}

	clayCourt, err := q.CreateCourt(ctx, db.CreateCourtParams{CourtNumber: 101, SurfaceTypeID: clay.ID})
	if err != nil {
		t.Fatalf("create clay court: %v", err)
	}
	grassCourt, err := q.CreateCourt(ctx, db.CreateCourtParams{CourtNumber: 104, SurfaceTypeID: grass.ID})
	if err != nil {
		t.Fatalf("create grass court: %v", err)
	}

	return &fixture{
		database:   database,
		clay:       clay,
		grass:      grass,
		clayCourt:  clayCourt,
		grassCourt: grassCourt,
	}
}

func (f *fixture) reservationService(t *testing.T) *ReservationService {
	t.Helper()
	svc := NewReservationService(f.database, mustPolicy(t))
	svc.now = func() time.Time { return testNow }
	return svc
}

// slot returns a time on the fixture's test day.
func slot(hour, minute int) time.Time {
	return time.Date(2030, 5, 10, hour, minute, 0, 0, time.UTC)
}

func bookingRequest(courtNumber int64, startTime, endTime time.Time) ReservationRequest {
	return ReservationRequest{
		UserName:    "Jana Novakova",
		PhoneNumber: "+420601123456",
		StartTime:   startTime,
		EndTime:     endTime,
		CourtNumber: courtNumber,
		GameType:    db.GameTypeSingles,
	}
}
