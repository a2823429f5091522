package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatePerUnit is the fare in minor currency units charged per distance unit
// travelled.
var RatePerUnit = decimal.NewFromInt(10)

// Coordinate is a geographic point.
type Coordinate struct {
	Lat float64
	Lng float64
}

// TripCharge records a settled distance charge. Created only when the
// account balance covered the cost; a rejected charge leaves no record.
type TripCharge struct {
	ID        string
	AccountID string
	Start     Coordinate
	End       Coordinate
	Distance  decimal.Decimal
	Cost      int64
	CreatedAt time.Time
}

// TravelCost prices a trip of the given distance. Fractional minor units
// round up so a partial unit is never given away.
func TravelCost(distance decimal.Decimal) (int64, error) {
	if distance.IsNegative() {
		return 0, ErrInvalidDistance
	}
	return distance.Mul(RatePerUnit).Ceil().IntPart(), nil
}
