package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type authenticateRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"required,oneof=admin tenant contractor"`
	Plan     string `json:"plan"     validate:"omitempty,oneof=free pro"`
}

// userResponse is the public projection of an account. The password hash
// never leaves the service.
type userResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Plan  string `json:"plan"`
}

type authResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

// --- Properties ---

type coordinates struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

type createPropertyRequest struct {
	Address        string       `json:"address"         validate:"required,max=255"`
	RentCents      int64        `json:"rent_cents"      validate:"gte=0"`
	GeofenceRadius int          `json:"geofence_radius" validate:"gte=0"`
	Location       *coordinates `json:"location"        validate:"omitempty"`
}

type propertyResponse struct {
	ID             uint         `json:"id"`
	OwnerID        uint         `json:"owner_id"`
	Address        string       `json:"address"`
	RentCents      int64        `json:"rent_cents"`
	GeofenceRadius int          `json:"geofence_radius"`
	Location       *coordinates `json:"location,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// --- Contractors ---

type createContractorRequest struct {
	Name             string `json:"name"               validate:"required,max=255"`
	Email            string `json:"email"              validate:"omitempty,email"`
	PayRateCents     int64  `json:"pay_rate_cents"     validate:"gte=0"`
	BillingRateCents int64  `json:"billing_rate_cents" validate:"gte=0"`
	Plan             string `json:"plan"               validate:"omitempty,oneof=free pro"`
}

type contractorResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email,omitempty"`
	PayRateCents     int64     `json:"pay_rate_cents"`
	BillingRateCents int64     `json:"billing_rate_cents"`
	Plan             string    `json:"plan"`
	CreatedAt        time.Time `json:"created_at"`
}

// --- Time entries ---

type clockInRequest struct {
	ContractorID uint         `json:"contractor_id" validate:"required"`
	PropertyID   uint         `json:"property_id"   validate:"required"`
	Location     *coordinates `json:"location"      validate:"required"`
	At           *time.Time   `json:"at,omitempty"`
}

type clockOutRequest struct {
	At *time.Time `json:"at,omitempty"`
}

type timeEntryResponse struct {
	ID           uint        `json:"id"`
	ContractorID uint        `json:"contractor_id"`
	PropertyID   uint        `json:"property_id"`
	ClockIn      time.Time   `json:"clock_in"`
	ClockOut     *time.Time  `json:"clock_out,omitempty"`
	Location     coordinates `json:"location"`
	Offsite      bool        `json:"offsite"`
}

// --- Transactions ---

type recordTransactionRequest struct {
	Description string `json:"description"  validate:"required,max=255"`
	Category    string `json:"category"     validate:"required,max=64"`
	DebitCents  int64  `json:"debit_cents"  validate:"gte=0"`
	CreditCents int64  `json:"credit_cents" validate:"gte=0"`
	PropertyID  *uint  `json:"property_id,omitempty"`
}

type transactionResponse struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	DebitCents  int64     `json:"debit_cents"`
	CreditCents int64     `json:"credit_cents"`
	PropertyID  *uint     `json:"property_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type balanceResponse struct {
	DebitCents  int64 `json:"debit_cents"`
	CreditCents int64 `json:"credit_cents"`
	NetCents    int64 `json:"net_cents"`
}
