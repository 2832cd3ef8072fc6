package domain

import (
	"errors"
	"time"
)

// DefaultGeofenceRadius is applied when a property is created without a radius.
const DefaultGeofenceRadius = 200

var (
	ErrPropertyNotFound  = errors.New("property not found")
	ErrInvalidGeofence   = errors.New("geofence radius must be positive")
	ErrInvalidRentAmount = errors.New("rent amount must not be negative")
)

// Property is a rentable unit owned by an admin user.
type Property struct {
	ID             uint
	OwnerID        uint
	Address        string
	RentCents      int64
	GeofenceRadius int
	// Location is the geofence centre; nil when the owner never set one.
	Location  *Coordinates
	CreatedAt time.Time
}

// Coordinates represents a geographic point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
