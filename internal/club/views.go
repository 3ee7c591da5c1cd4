// internal/club/views.go
package club

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/McNabAndy/tennisclub-reservation-api/internal/db"
)

// Response views returned by the services. Prices render as decimal strings.

type SurfaceTypeView struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	MinutePrice decimal.Decimal `json:"minutePrice"`
}

type CourtView struct {
	ID          int64           `json:"id"`
	CourtNumber int64           `json:"courtNumber"`
	SurfaceType SurfaceTypeView `json:"surfaceType"`
}

type ReservationView struct {
	ID          int64           `json:"id"`
	CourtNumber int64           `json:"courtNumber"`
	UserName    string          `json:"userName"`
	PhoneNumber string          `json:"phoneNumber"`
	StartTime   time.Time       `json:"startTime"`
	EndTime     time.Time       `json:"endTime"`
	CreatedAt   time.Time       `json:"createdAt"`
	Price       decimal.Decimal `json:"price"`
	GameType    db.GameType     `json:"gameType"`
}

func newSurfaceTypeView(st db.SurfaceType) SurfaceTypeView {
	return SurfaceTypeView{
		ID:          st.ID,
		Name:        st.Name,
		MinutePrice: st.MinutePrice,
	}
}

func newCourtView(court db.Court, st db.SurfaceType) CourtView {
	return CourtView{
		ID:          court.ID,
		CourtNumber: court.CourtNumber,
		SurfaceType: newSurfaceTypeView(st),
	}
}

func newReservationView(r db.Reservation, court db.Court, user db.User) ReservationView {
	return ReservationView{
		ID:          r.ID,
		CourtNumber: court.CourtNumber,
		UserName:    user.Name,
		PhoneNumber: user.PhoneNumber,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		CreatedAt:   r.CreatedAt,
		Price:       r.Price,
		GameType:    r.GameType,
	}
}
