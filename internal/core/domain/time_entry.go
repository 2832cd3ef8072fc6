package domain

import (
	"errors"
	"math"
	"time"
)

var (
	ErrTimeEntryNotFound = errors.New("time entry not found")
	ErrAlreadyClockedIn  = errors.New("contractor already clocked in")
	ErrEntryClosed       = errors.New("time entry already closed")
	ErrClockOutBeforeIn  = errors.New("clock out must not precede clock in")
)

const earthRadiusMeters = 6371000.0

// TimeEntry is a single clock-in/clock-out session. ClockOut is nil while open.
type TimeEntry struct {
	ID           uint
	ContractorID uint
	PropertyID   uint
	ClockIn      time.Time
	ClockOut     *time.Time
	ClockInAt    Coordinates
	Offsite      bool
	CreatedAt    time.Time
}

// Open reports whether the entry has not been clocked out yet.
func (e *TimeEntry) Open() bool {
	return e.ClockOut == nil
}

// DistanceMeters returns the great-circle distance between a and b.
func DistanceMeters(a, b Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// IsOffsite reports whether point falls outside the property's geofence.
// A property without a location cannot confirm presence, so every clock-in
// against it is treated as offsite.
func (p *Property) IsOffsite(point Coordinates) bool {
	if p.Location == nil {
		return true
	}
	return DistanceMeters(*p.Location, point) > float64(p.GeofenceRadius)
}
