// internal/db/models.go
package db

import (
	"time"

	"github.com/shopspring/decimal"
)

// GameType selects singles or doubles play for a reservation. Doubles
// doubles the price.
type GameType string

const (
	GameTypeSingles GameType = "SINGLES"
	GameTypeDoubles GameType = "DOUBLES"
)

func (g GameType) Valid() bool {
	return g == GameTypeSingles || g == GameTypeDoubles
}

type SurfaceType struct {
	ID          int64
	Name        string
	MinutePrice decimal.Decimal
	Deleted     bool
}

type Court struct {
	ID            int64
	CourtNumber   int64
	SurfaceTypeID int64
	Deleted       bool
}

type User struct {
	ID          int64
	PhoneNumber string
	Name        string
	Deleted     bool
}

type Reservation struct {
	ID        int64
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
	Price     decimal.Decimal
	GameType  GameType
	Deleted   bool
	CourtID   int64
	UserID    int64
}
