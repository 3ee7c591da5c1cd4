package club

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/McNabAndy/tennisclub-reservation-api/internal/db"
)

func TestReservationCreate(t *testing.T) {
	f := newFixture(t)
	svc := f.reservationService(t)
	ctx := context.Background()

	view, err := svc.Create(ctx, bookingRequest(101, slot(10, 0), slot(11, 0)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if view.ID == 0 {
		t.Error("expected assigned id")
	}
	if view.CourtNumber != 101 {
		t.Errorf("court number = %d, want 101", view.CourtNumber)
	}
	if view.UserName != "Jana Novakova" {
		t.Errorf("user name = %q", view.UserName)
	}
	if view.PhoneNumber != "+420601123456" {
		t.Errorf("phone = %q, want +420601123456", view.PhoneNumber)
	}
	if want := decimal.RequireFromString("90"); !view.Price.Equal(want) {
		t.Errorf("price = %s, want %s", view.Price, want)
	}
	if !view.CreatedAt.Equal(testNow) {
		t.Errorf("created at = %v, want %v", view.CreatedAt, testNow)
	}

	got, err := svc.GetByID(ctx, view.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if !got.StartTime.Equal(slot(10, 0)) || !got.EndTime.Equal(slot(11, 0)) {
		t.Errorf("stored window = %v..%v", got.StartTime, got.EndTime)
	}
}

func TestReservationCreateDoublesPrice(t *testing.T) {
	f := newFixture(t)
	svc := f.reservationService(t)

	req := bookingRequest(104, slot(10, 0), slot(11, 0))
	req.GameType = db.GameTypeDoubles

	view, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// 60 minutes of grass at 2.5/min, doubled.
	if want := decimal.RequireFromString("300"); !view.Price.Equal(want) {
		t.Errorf("price = %s, want %s", view.Price, want)
	}
}

func TestReservationCreateNormalizesPhone(t *testing.T) {
	f := newFixture(t)
	svc := f.reservationService(t)

	req := bookingRequest(101, slot(10, 0), slot(11, 0))
	req.PhoneNumber = "601 123 456"

	view, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.PhoneNumber != "+420601123456" {
		t.Errorf("phone = %q, want +420601123456", view.PhoneNumber)
	}
}

func TestReservationCreateUnknownCourt(t *testing.T) {
	f := newFixture(t)
	svc := f.reservationService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, bookingRequest(999, slot(10, 0), slot(11, 0)))
	if !errors.Is(err, ErrCourtNotFound) {
		t.Fatalf("err = %v, want ErrCourtNotFound", err)
	}

	// The failed admission must leave nothing behind.
	if _, err := f.database.Queries.GetUserByPhone(ctx, "+420601123456"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("user lookup err = %v, want ErrNoRows", err)
	}
	views, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("reservations = %d, want 0", len(views))
	}
}

func TestReservationCreateRejectsPolicyViolations(t *testing.T) {
	f := newFixture(t)
	svc := f.reservationService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		startTime time.Time
		endTime   time.Time
	}{
		{"start in the past", slot(8, 0), slot(8, 30)},
		{"over two hours", slot(10, 0), slot(12, 30)},
		{"before opening", slot(9, 30), slot(10, 30)},
		{"past closing", slot(21, 30), slot(22, 30)},
		{"end before start", slot(15, 0), slot(14, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, bookingRequest(101, tt.startTime, tt.endTime))
			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestReservationCreateRejectsBadRequest(t *testing.T) {
	f := newFixture(t)
	svc := f.reservationService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*ReservationRequest)
	}{
		{"missing user name", func(r *ReservationRequest) { r.UserName = "" }},
		{"missing phone", func(r *ReservationRequest) { r.PhoneNumber = "" }},
		{"invalid phone", func(r *ReservationRequest) { r.PhoneNumber = "nonsense" }},
		{"zero court number", func(r *ReservationRequest) { r.CourtNumber = 0 }},
		{"unknown game type", func(r *ReservationRequest) { r.GameType = "TRIPLES" }},
		{"zero start time", func(r *ReservationRequest) { r.StartTime = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := bookingRequest(101, slot(10, 0), slot(11, 0))
			tt.mutate(&req)

			_, err := svc.Create(ctx, req)
			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestReservationCreateConflicts(t *testing.T) {
	f := newFixture(t)
	svc := f.reservationService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, bookingRequest(101, slot(10, 0), slot(11, 0))); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	_, err := svc.Create(ctx, bookingRequest(101, slot(10, 30), slot(11, 30)))
	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("overlap err = %v, want ValidationError", err)
	}

	// Half-open windows: the next hour starts the moment the first ends.
	if _, err := svc.Create(ctx, bookingRequest(101, slot(11, 0), slot(12, 0))); err != nil {
		t.Errorf("back-to-back booking rejected: %v", err)
	}

	// Same window on a different court is fine.
	if _, err := svc.Create(ctx, bookingRequest(104, slot(10, 0), slot(11, 0))); err != nil {
		t.Errorf("other court rejected: %v", err)
	}
}

func TestReservationCreateReusesUserByPhone(t *testing.T) {
	f := newFixture(t)
	svc := f.reservationService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, bookingRequest(101, slot(10, 0), slot(11, 0)))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}

	renamed := bookingRequest(101, slot(12, 0), slot(13, 0))
	renamed.UserName = "Jana Svobodova"
	second, err := svc.Create(ctx, renamed)
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	if second.UserName != "Jana Svobodova" {
		t.Errorf("user name = %q, want updated name", second.UserName)
	}

	user, err := f.database.Queries.GetUserByPhone(ctx, "+420601123456")
	if err != nil {
		t.Fatalf("user lookup: %v", err)
	}
	if user.Name != "Jana Svobodova" {
		t.Errorf("stored name = %q, want Jana Svobodova", user.Name)
	}

	// The rename must not have spawned a second user row.
	refreshed, err := svc.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("reload first booking: %v", err)
	}
	if refreshed.UserName != "Jana Svobodova" {
		t.Errorf("first booking now shows %q, want shared user renamed", refreshed.UserName)
	}
}

func TestReservationUpdate(t *testing.T) {
	f := newFixture(t)
	svc := f.reservationService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, bookingRequest(101, slot(10, 0), slot(11, 0)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Shifting into a window that overlaps only itself must not conflict.
	updated, err := svc.Update(ctx, created.ID, bookingRequest(101, slot(10, 30), slot(12, 0)))
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("id changed: %d -> %d", created.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created at changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	// 90 minutes of clay at 1.5/min.
	if want := decimal.RequireFromString("135"); !updated.Price.Equal(want) {
		t.Errorf("price = %s, want %s", updated.Price, want)
	}
}

func TestReservationUpdateConflictsWithOthers(t *testing.T) {
	f := newFixture(t)
	svc := f.reservationService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, bookingRequest(101, slot(10, 0), slot(11, 0)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, bookingRequest(101, slot(12, 0), slot(13, 0))); err != nil {
		t.Fatalf("second booking: %v", err)
	}

	_, err = svc.Update(ctx, created.ID, bookingRequest(101, slot(12, 30), slot(13, 30)))
	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestReservationUpdateNotFound(t *testing.T) {
	f := newFixture(t)
	svc := f.reservationService(t)

	_, err := svc.Update(context.Background(), 41, bookingRequest(101, slot(10, 0), slot(11, 0)))
	if !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("err = %v, want ErrReservationNotFound", err)
	}
}

func TestReservationDelete(t *testing.T) {
	f := newFixture(t)
	svc := f.reservationService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, bookingRequest(101, slot(10, 0), slot(11, 0)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrReservationNotFound) {
		t.Errorf("get after delete = %v, want ErrReservationNotFound", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrReservationNotFound) {
		t.Errorf("second delete = %v, want ErrReservationNotFound", err)
	}

	// The slot opens back up.
	if _, err := svc.Create(ctx, bookingRequest(101, slot(10, 0), slot(11, 0))); err != nil {
		t.Errorf("rebooking freed slot: %v", err)
	}
}

func TestReservationListAllEmpty(t *testing.T) {
	f := newFixture(t)
	svc := f.reservationService(t)

	views, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("reservations = %d, want 0", len(views))
	}
}

func TestReservationListByCourtNumber(t *testing.T) {
	f := newFixture(t)
	svc := f.reservationService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, bookingRequest(101, slot(10, 0), slot(11, 0))); err != nil {
		t.Fatalf("booking: %v", err)
	}
	if _, err := svc.Create(ctx, bookingRequest(104, slot(10, 0), slot(11, 0))); err != nil {
		t.Fatalf("booking: %v", err)
	}

	views, err := svc.ListByCourtNumber(ctx, 101)
	if err != nil {
		t.Fatalf("list by court: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("reservations = %d, want 1", len(views))
	}
	if views[0].CourtNumber != 101 {
		t.Errorf("court number = %d, want 101", views[0].CourtNumber)
	}

	empty, err := svc.ListByCourtNumber(ctx, 999)
	if err != nil {
		t.Fatalf("list unknown court: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("unknown court reservations = %d, want 0", len(empty))
	}
}

func TestReservationListByPhone(t *testing.T) {
	f := newFixture(t)
	svc := f.reservationService(t)
	ctx := context.Background()
	q := f.database.Queries

	user, err := q.CreateUser(ctx, db.CreateUserParams{PhoneNumber: "+420601123456", Name: "Jana Novakova"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	// One booking already in the past, inserted below the service.
	past, err := q.CreateReservation(ctx, db.CreateReservationParams{
		StartTime: testNow.Add(-2 * time.Hour),
		EndTime:   testNow.Add(-1 * time.Hour),
		CreatedAt: testNow.Add(-24 * time.Hour),
		Price:     decimal.RequireFromString("90"),
		GameType:  db.GameTypeSingles,
		CourtID:   f.clayCourt.ID,
		UserID:    user.ID,
	})
	if err != nil {
		t.Fatalf("insert past reservation: %v", err)
	}

	upcoming, err := svc.Create(ctx, bookingRequest(101, slot(14, 0), slot(15, 0)))
	if err != nil {
		t.Fatalf("future booking: %v", err)
	}

	all, err := svc.ListByPhone(ctx, "601 123 456", false)
	if err != nil {
		t.Fatalf("list by phone: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all reservations = %d, want 2", len(all))
	}

	future, err := svc.ListByPhone(ctx, "+420601123456", true)
	if err != nil {
		t.Fatalf("list future by phone: %v", err)
	}
	if len(future) != 1 {
		t.Fatalf("future reservations = %d, want 1", len(future))
	}
	if future[0].ID != upcoming.ID {
		t.Errorf("future reservation id = %d, want %d (not %d)", future[0].ID, upcoming.ID, past.ID)
	}
}
