package courts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/McNabAndy/tennisclub-reservation-api/internal/club"
	"github.com/McNabAndy/tennisclub-reservation-api/internal/db"
	"github.com/McNabAndy/tennisclub-reservation-api/internal/testutil"
)

// setupHandlers wires a fresh service into the package-level handler state
// and seeds one surface type, returning its id.
func setupHandlers(t *testing.T) int64 {
	t.Helper()

	database := testutil.NewTestDB(t)
	clay, err := database.Queries.CreateSurfaceType(context.Background(), db.CreateSurfaceTypeParams{
		Name:        "Clay",
		MinutePrice: decimal.RequireFromString("1.5"),
	})
	if err != nil {
		t.Fatalf("create surface type: %v", err)
	}

	service = nil
	serviceOnce = sync.Once{}
	InitHandlers(club.NewCourtService(database))
	t.Cleanup(func() {
		service = nil
		serviceOnce = sync.Once{}
	})

	return clay.ID
}

func courtBody(t *testing.T, courtNumber, surfaceTypeID int64) *bytes.Buffer {
	t.Helper()

	body, err := json.Marshal(club.CourtRequest{CourtNumber: courtNumber, SurfaceTypeID: surfaceTypeID})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return bytes.NewBuffer(body)
}

func createCourt(t *testing.T, courtNumber, surfaceTypeID int64) club.CourtView {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/courts", courtBody(t, courtNumber, surfaceTypeID))
	rec := httptest.NewRecorder()
	HandleCourtCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var view club.CourtView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return view
}

func TestHandleCourtCreate(t *testing.T) {
	clayID := setupHandlers(t)

	view := createCourt(t, 101, clayID)
	if view.CourtNumber != 101 || view.SurfaceType.ID != clayID {
		t.Errorf("view = %+v", view)
	}
}

func TestHandleCourtCreateDuplicateNumber(t *testing.T) {
	clayID := setupHandlers(t)

	createCourt(t, 101, clayID)

	req := httptest.NewRequest(http.MethodPost, "/api/courts", courtBody(t, 101, clayID))
	rec := httptest.NewRecorder()
	HandleCourtCreate(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body %s", rec.Code, rec.Body.String())
	}
}

func TestHandleCourtCreateUnknownSurface(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/courts", courtBody(t, 101, 999))
	rec := httptest.NewRecorder()
	HandleCourtCreate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body %s", rec.Code, rec.Body.String())
	}
}

func TestHandleCourtsList(t *testing.T) {
	clayID := setupHandlers(t)

	createCourt(t, 101, clayID)
	createCourt(t, 102, clayID)

	req := httptest.NewRequest(http.MethodGet, "/api/courts", nil)
	rec := httptest.NewRecorder()
	HandleCourtsList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var views []club.CourtView
	if err := json.NewDecoder(rec.Body).Decode(&views); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(views) != 2 {
		t.Errorf("courts = %d, want 2", len(views))
	}
}

func TestHandleCourtUpdate(t *testing.T) {
	clayID := setupHandlers(t)

	created := createCourt(t, 101, clayID)

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/courts/%d", created.ID), courtBody(t, 107, clayID))
	req.SetPathValue("id", fmt.Sprintf("%d", created.ID))
	rec := httptest.NewRecorder()
	HandleCourtUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var view club.CourtView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.CourtNumber != 107 {
		t.Errorf("court number = %d, want 107", view.CourtNumber)
	}
}

func TestHandleCourtDelete(t *testing.T) {
	clayID := setupHandlers(t)

	created := createCourt(t, 101, clayID)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/courts/%d", created.ID), nil)
	req.SetPathValue("id", fmt.Sprintf("%d", created.ID))
	rec := httptest.NewRecorder()
	HandleCourtDelete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/courts/%d", created.ID), nil)
	req.SetPathValue("id", fmt.Sprintf("%d", created.ID))
	rec = httptest.NewRecorder()
	HandleCourtGet(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}
