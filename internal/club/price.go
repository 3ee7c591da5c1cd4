// internal/club/price.go
package club

import (
	"github.com/shopspring/decimal"

	"github.com/McNabAndy/tennisclub-reservation-api/internal/db"
)

var two = decimal.NewFromInt(2)

// Price computes the reservation cost from the surface's per-minute rate and
// the booked minutes. Doubles play costs twice the singles rate. Durations
// are guaranteed positive by the booking policy, which runs first.
func Price(minutePrice decimal.Decimal, minutes int64, gameType db.GameType) decimal.Decimal {
	basePrice := minutePrice.Mul(decimal.NewFromInt(minutes))
	if gameType == db.GameTypeDoubles {
		return basePrice.Mul(two)
	}
	return basePrice
}
