// internal/db/queries.go
package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every query can run
// standalone or inside a transaction.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries is the hand-written query layer over the SQLite schema. Every
// lookup excludes soft-deleted rows; deletion is always a flag update.
type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

// utc normalizes time parameters so stored timestamps compare reliably.
func utc(t time.Time) time.Time {
	return t.UTC()
}

type CreateSurfaceTypeParams struct {
	Name        string
	MinutePrice decimal.Decimal
}

func (q *Queries) CreateSurfaceType(ctx context.Context, params CreateSurfaceTypeParams) (SurfaceType, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO surface_types (name, minute_price, deleted) VALUES (?, ?, 0)`,
		params.Name, params.MinutePrice,
	)
	if err != nil {
		return SurfaceType{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return SurfaceType{}, err
	}
	return SurfaceType{ID: id, Name: params.Name, MinutePrice: params.MinutePrice}, nil
}

func (q *Queries) GetSurfaceTypeByID(ctx context.Context, id int64) (SurfaceType, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, name, minute_price, deleted FROM surface_types WHERE id = ? AND deleted = 0`,
		id,
	)
	return scanSurfaceType(row)
}

func (q *Queries) ListSurfaceTypes(ctx context.Context) ([]SurfaceType, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, name, minute_price, deleted FROM surface_types WHERE deleted = 0 ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var surfaceTypes []SurfaceType
	for rows.Next() {
		st, err := scanSurfaceType(rows)
		if err != nil {
			return nil, err
		}
		surfaceTypes = append(surfaceTypes, st)
	}
	return surfaceTypes, rows.Err()
}

// UpdateSurfaceType applies a full-field merge of the given surface type.
func (q *Queries) UpdateSurfaceType(ctx context.Context, st SurfaceType) (SurfaceType, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE surface_types SET name = ?, minute_price = ?, deleted = ? WHERE id = ?`,
		st.Name, st.MinutePrice, st.Deleted, st.ID,
	)
	if err != nil {
		return SurfaceType{}, err
	}
	return st, nil
}

type CreateCourtParams struct {
	CourtNumber   int64
	SurfaceTypeID int64
}

func (q *Queries) CreateCourt(ctx context.Context, params CreateCourtParams) (Court, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO courts (court_number, surface_type_id, deleted) VALUES (?, ?, 0)`,
		params.CourtNumber, params.SurfaceTypeID,
	)
	if err != nil {
		return Court{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Court{}, err
	}
	return Court{ID: id, CourtNumber: params.CourtNumber, SurfaceTypeID: params.SurfaceTypeID}, nil
}

func (q *Queries) GetCourtByID(ctx context.Context, id int64) (Court, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, court_number, surface_type_id, deleted FROM courts WHERE id = ? AND deleted = 0`,
		id,
	)
	return scanCourt(row)
}

func (q *Queries) GetCourtByNumber(ctx context.Context, courtNumber int64) (Court, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, court_number, surface_type_id, deleted FROM courts WHERE court_number = ? AND deleted = 0`,
		courtNumber,
	)
	return scanCourt(row)
}

func (q *Queries) ListCourts(ctx context.Context) ([]Court, error) {
	return q.queryCourts(ctx,
		`SELECT id, court_number, surface_type_id, deleted FROM courts WHERE deleted = 0 ORDER BY court_number`,
	)
}

func (q *Queries) ListCourtsBySurfaceType(ctx context.Context, surfaceTypeID int64) ([]Court, error) {
	return q.queryCourts(ctx,
		`SELECT id, court_number, surface_type_id, deleted FROM courts WHERE surface_type_id = ? AND deleted = 0 ORDER BY court_number`,
		surfaceTypeID,
	)
}

// UpdateCourt applies a full-field merge of the given court.
func (q *Queries) UpdateCourt(ctx context.Context, court Court) (Court, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE courts SET court_number = ?, surface_type_id = ?, deleted = ? WHERE id = ?`,
		court.CourtNumber, court.SurfaceTypeID, court.Deleted, court.ID,
	)
	if err != nil {
		return Court{}, err
	}
	return court, nil
}

type CreateUserParams struct {
	PhoneNumber string
	Name        string
}

func (q *Queries) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO users (phone_number, name, deleted) VALUES (?, ?, 0)`,
		params.PhoneNumber, params.Name,
	)
	if err != nil {
		return User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, err
	}
	return User{ID: id, PhoneNumber: params.PhoneNumber, Name: params.Name}, nil
}

func (q *Queries) GetUserByPhone(ctx context.Context, phoneNumber string) (User, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, phone_number, name, deleted FROM users WHERE phone_number = ? AND deleted = 0`,
		phoneNumber,
	)
	return scanUser(row)
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, phone_number, name, deleted FROM users WHERE id = ? AND deleted = 0`,
		id,
	)
	return scanUser(row)
}

// UpdateUser applies a full-field merge of the given user.
func (q *Queries) UpdateUser(ctx context.Context, user User) (User, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET phone_number = ?, name = ?, deleted = ? WHERE id = ?`,
		user.PhoneNumber, user.Name, user.Deleted, user.ID,
	)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

type CreateReservationParams struct {
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
	Price     decimal.Decimal
	GameType  GameType
	CourtID   int64
	UserID    int64
}

func (q *Queries) CreateReservation(ctx context.Context, params CreateReservationParams) (Reservation, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO reservations (start_time, end_time, created_at, price, game_type, deleted, court_id, user_id)
		 VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		utc(params.StartTime), utc(params.EndTime), utc(params.CreatedAt),
		params.Price, string(params.GameType), params.CourtID, params.UserID,
	)
	if err != nil {
		return Reservation{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Reservation{}, err
	}
	return Reservation{
		ID:        id,
		StartTime: utc(params.StartTime),
		EndTime:   utc(params.EndTime),
		CreatedAt: utc(params.CreatedAt),
		Price:     params.Price,
		GameType:  params.GameType,
		CourtID:   params.CourtID,
		UserID:    params.UserID,
	}, nil
}

func (q *Queries) GetReservationByID(ctx context.Context, id int64) (Reservation, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, start_time, end_time, created_at, price, game_type, deleted, court_id, user_id
		 FROM reservations WHERE id = ? AND deleted = 0`,
		id,
	)
	return scanReservation(row)
}

type ListReservationsByCourtAndDateParams struct {
	CourtNumber int64
	DayStart    time.Time
	DayEnd      time.Time
	// ExcludeID removes one reservation from the result, used when a
	// reservation is checked against itself during updates. Zero excludes
	// nothing.
	ExcludeID int64
}

func (q *Queries) ListReservationsByCourtAndDate(ctx context.Context, params ListReservationsByCourtAndDateParams) ([]Reservation, error) {
	return q.queryReservations(ctx,
		`SELECT r.id, r.start_time, r.end_time, r.created_at, r.price, r.game_type, r.deleted, r.court_id, r.user_id
		 FROM reservations r
		 JOIN courts c ON c.id = r.court_id
		 WHERE c.court_number = ? AND r.start_time >= ? AND r.start_time < ?
		   AND r.deleted = 0 AND r.id != ?
		 ORDER BY r.start_time`,
		params.CourtNumber, utc(params.DayStart), utc(params.DayEnd), params.ExcludeID,
	)
}

func (q *Queries) ListReservationsByCourtNumber(ctx context.Context, courtNumber int64) ([]Reservation, error) {
	return q.queryReservations(ctx,
		`SELECT r.id, r.start_time, r.end_time, r.created_at, r.price, r.game_type, r.deleted, r.court_id, r.user_id
		 FROM reservations r
		 JOIN courts c ON c.id = r.court_id
		 WHERE c.court_number = ? AND r.deleted = 0
		 ORDER BY r.created_at DESC`,
		courtNumber,
	)
}

type ListReservationsByPhoneParams struct {
	PhoneNumber string
	FutureOnly  bool
	From        time.Time
}

func (q *Queries) ListReservationsByPhone(ctx context.Context, params ListReservationsByPhoneParams) ([]Reservation, error) {
	query := `SELECT r.id, r.start_time, r.end_time, r.created_at, r.price, r.game_type, r.deleted, r.court_id, r.user_id
		 FROM reservations r
		 JOIN users u ON u.id = r.user_id
		 WHERE u.phone_number = ? AND r.deleted = 0`
	args := []any{params.PhoneNumber}
	if params.FutureOnly {
		query += ` AND r.start_time >= ?`
		args = append(args, utc(params.From))
	}
	query += ` ORDER BY r.start_time`
	return q.queryReservations(ctx, query, args...)
}

func (q *Queries) ListReservations(ctx context.Context) ([]Reservation, error) {
	return q.queryReservations(ctx,
		`SELECT id, start_time, end_time, created_at, price, game_type, deleted, court_id, user_id
		 FROM reservations WHERE deleted = 0 ORDER BY start_time`,
	)
}

// UpdateReservation applies a full-field merge of the given reservation.
func (q *Queries) UpdateReservation(ctx context.Context, r Reservation) (Reservation, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE reservations
		 SET start_time = ?, end_time = ?, created_at = ?, price = ?, game_type = ?, deleted = ?, court_id = ?, user_id = ?
		 WHERE id = ?`,
		utc(r.StartTime), utc(r.EndTime), utc(r.CreatedAt),
		r.Price, string(r.GameType), r.Deleted, r.CourtID, r.UserID, r.ID,
	)
	if err != nil {
		return Reservation{}, err
	}
	r.StartTime = utc(r.StartTime)
	r.EndTime = utc(r.EndTime)
	r.CreatedAt = utc(r.CreatedAt)
	return r, nil
}

// SoftDeleteReservation marks a live reservation deleted and reports how
// many rows changed.
func (q *Queries) SoftDeleteReservation(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE reservations SET deleted = 1 WHERE id = ? AND deleted = 0`,
		id,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSurfaceType(row rowScanner) (SurfaceType, error) {
	var st SurfaceType
	err := row.Scan(&st.ID, &st.Name, &st.MinutePrice, &st.Deleted)
	return st, err
}

func scanCourt(row rowScanner) (Court, error) {
	var c Court
	err := row.Scan(&c.ID, &c.CourtNumber, &c.SurfaceTypeID, &c.Deleted)
	return c, err
}

func scanUser(row rowScanner) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.PhoneNumber, &u.Name, &u.Deleted)
	return u, err
}

func scanReservation(row rowScanner) (Reservation, error) {
	var r Reservation
	var gameType string
	err := row.Scan(&r.ID, &r.StartTime, &r.EndTime, &r.CreatedAt, &r.Price, &gameType, &r.Deleted, &r.CourtID, &r.UserID)
	r.GameType = GameType(gameType)
	return r, err
}

func (q *Queries) queryCourts(ctx context.Context, query string, args ...any) ([]Court, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courts []Court
	for rows.Next() {
		court, err := scanCourt(rows)
		if err != nil {
			return nil, err
		}
		courts = append(courts, court)
	}
	return courts, rows.Err()
}

func (q *Queries) queryReservations(ctx context.Context, query string, args ...any) ([]Reservation, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	return reservations, rows.Err()
}
