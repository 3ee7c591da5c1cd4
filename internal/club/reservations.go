// internal/club/reservations.go
package club

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/McNabAndy/tennisclub-reservation-api/internal/db"
)

// ReservationRequest carries the client-supplied booking fields. Price and
// creation time are always computed server-side.
type ReservationRequest struct {
	UserName    string      `json:"userName"`
	PhoneNumber string      `json:"phoneNumber"`
	StartTime   time.Time   `json:"startTime"`
	EndTime     time.Time   `json:"endTime"`
	CourtNumber int64       `json:"courtNumber"`
	GameType    db.GameType `json:"gameType"`
}

// ReservationService admits bookings: policy validation, conflict detection
// against same-court same-day reservations, user resolution by phone, price
// computation from the court's surface rate, and persistence. The whole
// check-then-write sequence runs under a per-court lock inside one
// transaction, so two overlapping requests for the same court cannot both
// be admitted.
type ReservationService struct {
	store  *db.DB
	policy Policy
	locks  *courtLocker
	now    func() time.Time
}

func NewReservationService(store *db.DB, policy Policy) *ReservationService {
	return &ReservationService{
		store:  store,
		policy: policy,
		locks:  newCourtLocker(),
		now:    time.Now,
	}
}

// Create admits a new reservation. It returns a ValidationError when the
// time range breaks policy or overlaps an existing booking, ErrCourtNotFound
// when the court number is unknown; nothing is persisted on failure.
func (s *ReservationService) Create(ctx context.Context, req ReservationRequest) (ReservationView, error) {
	if err := validateReservationRequest(req); err != nil {
		return ReservationView{}, err
	}
	phone, err := NormalizePhone(req.PhoneNumber)
	if err != nil {
		return ReservationView{}, err
	}

	unlock := s.locks.Lock(req.CourtNumber)
	defer unlock()

	var view ReservationView
	err = s.store.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries

		existing, err := s.sameDayReservations(ctx, q, req.CourtNumber, req.StartTime, 0)
		if err != nil {
			return err
		}

		if err := s.policy.Validate(req.StartTime, req.EndTime, s.now()); err != nil {
			return err
		}

		court, err := q.GetCourtByNumber(ctx, req.CourtNumber)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCourtNotFound
			}
			return fmt.Errorf("error loading court %d: %w", req.CourtNumber, err)
		}

		if HasConflict(req.StartTime, req.EndTime, existing, 0) {
			return ValidationError{Reason: fmt.Sprintf("court %d is already reserved in the requested time range", req.CourtNumber)}
		}

		user, err := s.resolveUser(ctx, q, phone, req.UserName)
		if err != nil {
			return err
		}

		price, err := s.computePrice(ctx, q, court, req)
		if err != nil {
			return err
		}

		created, err := q.CreateReservation(ctx, db.CreateReservationParams{
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			CreatedAt: s.now(),
			Price:     price,
			GameType:  req.GameType,
			CourtID:   court.ID,
			UserID:    user.ID,
		})
		if err != nil {
			return fmt.Errorf("error creating reservation: %w", err)
		}

		view = newReservationView(created, court, user)
		return nil
	})
	return view, err
}

// Update replays the admission pipeline for an existing reservation,
// excluding the reservation itself from the conflict set. The id and
// creation time are immutable; everything else, price included, is
// recomputed and replaced.
func (s *ReservationService) Update(ctx context.Context, id int64, req ReservationRequest) (ReservationView, error) {
	if err := validateReservationRequest(req); err != nil {
		return ReservationView{}, err
	}
	phone, err := NormalizePhone(req.PhoneNumber)
	if err != nil {
		return ReservationView{}, err
	}

	unlock := s.locks.Lock(req.CourtNumber)
	defer unlock()

	var view ReservationView
	err = s.store.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries

		current, err := q.GetReservationByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("error loading reservation %d: %w", id, err)
		}
		// A reservation whose court or user was soft-deleted out from
		// under it is no longer updatable.
		if _, err := q.GetCourtByID(ctx, current.CourtID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("error loading court %d: %w", current.CourtID, err)
		}
		if _, err := q.GetUserByID(ctx, current.UserID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("error loading user %d: %w", current.UserID, err)
		}

		existing, err := s.sameDayReservations(ctx, q, req.CourtNumber, req.StartTime, id)
		if err != nil {
			return err
		}

		if err := s.policy.Validate(req.StartTime, req.EndTime, s.now()); err != nil {
			return err
		}

		court, err := q.GetCourtByNumber(ctx, req.CourtNumber)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCourtNotFound
			}
			return fmt.Errorf("error loading court %d: %w", req.CourtNumber, err)
		}

		if HasConflict(req.StartTime, req.EndTime, existing, id) {
			return ValidationError{Reason: fmt.Sprintf("court %d is already reserved in the requested time range", req.CourtNumber)}
		}

		user, err := s.resolveUser(ctx, q, phone, req.UserName)
		if err != nil {
			return err
		}

		price, err := s.computePrice(ctx, q, court, req)
		if err != nil {
			return err
		}

		updated, err := q.UpdateReservation(ctx, db.Reservation{
			ID:        current.ID,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			CreatedAt: current.CreatedAt,
			Price:     price,
			GameType:  req.GameType,
			CourtID:   court.ID,
			UserID:    user.ID,
		})
		if err != nil {
			return fmt.Errorf("error updating reservation %d: %w", id, err)
		}

		view = newReservationView(updated, court, user)
		return nil
	})
	return view, err
}

// GetByID returns one live reservation or ErrReservationNotFound.
func (s *ReservationService) GetByID(ctx context.Context, id int64) (ReservationView, error) {
	q := s.store.Queries

	reservation, err := q.GetReservationByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ReservationView{}, ErrReservationNotFound
		}
		return ReservationView{}, fmt.Errorf("error loading reservation %d: %w", id, err)
	}
	return s.buildView(ctx, q, reservation, nil, nil)
}

// ListAll returns every live reservation; an empty club yields an empty
// list, not an error.
func (s *ReservationService) ListAll(ctx context.Context) ([]ReservationView, error) {
	reservations, err := s.store.Queries.ListReservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations: %w", err)
	}
	return s.buildViews(ctx, reservations)
}

// ListByCourtNumber returns live reservations for a court, newest first.
func (s *ReservationService) ListByCourtNumber(ctx context.Context, courtNumber int64) ([]ReservationView, error) {
	reservations, err := s.store.Queries.ListReservationsByCourtNumber(ctx, courtNumber)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations for court %d: %w", courtNumber, err)
	}
	return s.buildViews(ctx, reservations)
}

// ListByPhone returns live reservations made under a phone number, ordered
// by start time, optionally restricted to the future.
func (s *ReservationService) ListByPhone(ctx context.Context, phoneNumber string, futureOnly bool) ([]ReservationView, error) {
	phone, err := NormalizePhone(phoneNumber)
	if err != nil {
		return nil, err
	}

	reservations, err := s.store.Queries.ListReservationsByPhone(ctx, db.ListReservationsByPhoneParams{
		PhoneNumber: phone,
		FutureOnly:  futureOnly,
		From:        s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("error listing reservations for phone %s: %w", phone, err)
	}
	return s.buildViews(ctx, reservations)
}

// Delete soft-deletes one reservation.
func (s *ReservationService) Delete(ctx context.Context, id int64) error {
	rows, err := s.store.Queries.SoftDeleteReservation(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting reservation %d: %w", id, err)
	}
	if rows == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// resolveUser finds or creates the user keyed by normalized phone number.
// A changed display name on an existing user is persisted, never duplicated.
func (s *ReservationService) resolveUser(ctx context.Context, q *db.Queries, phone, name string) (db.User, error) {
	user, err := q.GetUserByPhone(ctx, phone)
	if err == nil {
		if user.Name != name {
			user.Name = name
			user, err = q.UpdateUser(ctx, user)
			if err != nil {
				return db.User{}, fmt.Errorf("error updating user %d: %w", user.ID, err)
			}
		}
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return db.User{}, fmt.Errorf("error loading user by phone: %w", err)
	}

	created, err := q.CreateUser(ctx, db.CreateUserParams{PhoneNumber: phone, Name: name})
	if err != nil {
		return db.User{}, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

func (s *ReservationService) computePrice(ctx context.Context, q *db.Queries, court db.Court, req ReservationRequest) (decimal.Decimal, error) {
	surfaceType, err := q.GetSurfaceTypeByID(ctx, court.SurfaceTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Decimal{}, ErrSurfaceTypeNotFound
		}
		return decimal.Decimal{}, fmt.Errorf("error loading surface type %d: %w", court.SurfaceTypeID, err)
	}

	minutes := int64(req.EndTime.Sub(req.StartTime) / time.Minute)
	return Price(surfaceType.MinutePrice, minutes, req.GameType), nil
}

// sameDayReservations loads the live reservations for a court on the
// candidate's calendar day. Date scoping is sufficient because no booking
// may cross midnight under the operating window.
func (s *ReservationService) sameDayReservations(ctx context.Context, q *db.Queries, courtNumber int64, startTime time.Time, excludeID int64) ([]db.Reservation, error) {
	dayStart := time.Date(startTime.Year(), startTime.Month(), startTime.Day(), 0, 0, 0, 0, startTime.Location())
	reservations, err := q.ListReservationsByCourtAndDate(ctx, db.ListReservationsByCourtAndDateParams{
		CourtNumber: courtNumber,
		DayStart:    dayStart,
		DayEnd:      dayStart.AddDate(0, 0, 1),
		ExcludeID:   excludeID,
	})
	if err != nil {
		return nil, fmt.Errorf("error loading reservations for court %d: %w", courtNumber, err)
	}
	return reservations, nil
}

func (s *ReservationService) buildViews(ctx context.Context, reservations []db.Reservation) ([]ReservationView, error) {
	q := s.store.Queries
	courts := make(map[int64]db.Court)
	users := make(map[int64]db.User)

	views := make([]ReservationView, 0, len(reservations))
	for _, reservation := range reservations {
		view, err := s.buildView(ctx, q, reservation, courts, users)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ReservationService) buildView(ctx context.Context, q *db.Queries, reservation db.Reservation, courts map[int64]db.Court, users map[int64]db.User) (ReservationView, error) {
	court, ok := courts[reservation.CourtID]
	if !ok {
		var err error
		court, err = q.GetCourtByID(ctx, reservation.CourtID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ReservationView{}, ErrReservationNotFound
			}
			return ReservationView{}, fmt.Errorf("error loading court %d: %w", reservation.CourtID, err)
		}
		if courts != nil {
			courts[reservation.CourtID] = court
		}
	}

	user, ok := users[reservation.UserID]
	if !ok {
		var err error
		user, err = q.GetUserByID(ctx, reservation.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ReservationView{}, ErrReservationNotFound
			}
			return ReservationView{}, fmt.Errorf("error loading user %d: %w", reservation.UserID, err)
		}
		if users != nil {
			users[reservation.UserID] = user
		}
	}

	return newReservationView(reservation, court, user), nil
}

func validateReservationRequest(req ReservationRequest) error {
	switch {
	case req.UserName == "":
		return ValidationError{Reason: "user name is required"}
	case req.CourtNumber <= 0:
		return ValidationError{Reason: "court number must be a positive integer"}
	case !req.GameType.Valid():
		return ValidationError{Reason: "game type must be SINGLES or DOUBLES"}
	case req.StartTime.IsZero() || req.EndTime.IsZero():
		return ValidationError{Reason: "start and end times are required"}
	}
	return nil
}
