package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/keyline/property-api/internal/core/domain"
	"github.com/keyline/property-api/internal/core/ports"
)

func TestPropertyHandler_Create(t *testing.T) {
	stub := &stubPropertyService{
		createFn: func(ctx context.Context, in ports.CreatePropertyInput) (*domain.Property, error) {
			if in.OwnerID != 3 || in.OwnerRole != domain.RoleAdmin {
				t.Fatalf("owner not taken from token: %+v", in)
			}
			if in.Location == nil || in.Location.Lat != 40.7128 {
				t.Fatalf("location not mapped: %+v", in.Location)
			}
			return &domain.Property{ID: 5, OwnerID: in.OwnerID, Address: in.Address, RentCents: in.RentCents, GeofenceRadius: 200, Location: in.Location}, nil
		},
	}
	body := `{"address":"12 Elm St","rent_cents":150000,"location":{"lat":40.7128,"lng":-74.006}}`
	c, rec := newContext(http.MethodPost, "/api/properties", body, 3, domain.RoleAdmin)

	if err := NewPropertyHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp propertyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 5 || resp.GeofenceRadius != 200 || resp.Location == nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPropertyHandler_Create_Validation(t *testing.T) {
	cases := map[string]string{
		"missing address": `{"rent_cents":1}`,
		"negative rent":   `{"address":"a","rent_cents":-1}`,
		"bad latitude":    `{"address":"a","location":{"lat":91,"lng":0}}`,
		"negative radius": `{"address":"a","geofence_radius":-10}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/api/properties", body, 3, domain.RoleAdmin)
			if err := NewPropertyHandler(&stubPropertyService{}).Create(c); httpCode(err) != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %v", err)
			}
		})
	}
}

func TestPropertyHandler_Get(t *testing.T) {
	stub := &stubPropertyService{
		getFn: func(ctx context.Context, id, ownerID uint) (*domain.Property, error) {
			if id != 5 || ownerID != 3 {
				t.Fatalf("unexpected args %d %d", id, ownerID)
			}
			return nil, domain.ErrPropertyNotFound
		},
	}
	c, _ := newContext(http.MethodGet, "/api/properties/5", "", 3, domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := NewPropertyHandler(stub).Get(c); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestPropertyHandler_Get_InvalidID(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-1"} {
		c, _ := newContext(http.MethodGet, "/api/properties/"+raw, "", 3, domain.RoleAdmin)
		c.SetParamNames("id")
		c.SetParamValues(raw)
		if err := NewPropertyHandler(&stubPropertyService{}).Get(c); httpCode(err) != http.StatusBadRequest {
			t.Fatalf("id %q: expected 400, got %v", raw, err)
		}
	}
}

func TestContractorHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubContractorService{
		listFn: func(ctx context.Context) ([]*domain.Contractor, error) { return nil, nil },
	}
	c, rec := newContext(http.MethodGet, "/api/contractors", "", 1, domain.RoleAdmin)
	if err := NewContractorHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestContractorHandler_Create(t *testing.T) {
	stub := &stubContractorService{
		createFn: func(ctx context.Context, in ports.CreateContractorInput) (*domain.Contractor, error) {
			if in.PayRateCents != 2500 || in.BillingRateCents != 4000 {
				t.Fatalf("unexpected rates: %+v", in)
			}
			return &domain.Contractor{ID: 1, Name: in.Name, PayRateCents: in.PayRateCents, BillingRateCents: in.BillingRateCents, Plan: domain.PlanFree}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/contractors", `{"name":"Sam","pay_rate_cents":2500,"billing_rate_cents":4000}`, 1, domain.RoleAdmin)
	if err := NewContractorHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestTimeEntryHandler_ClockIn(t *testing.T) {
	at := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	stub := &stubTimeClockService{
		clockInFn: func(ctx context.Context, in ports.ClockInInput) (*domain.TimeEntry, error) {
			if in.ContractorID != 2 || in.PropertyID != 5 || !in.At.Equal(at) {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.TimeEntry{ID: 11, ContractorID: 2, PropertyID: 5, ClockIn: at, ClockInAt: in.Location, Offsite: true}, nil
		},
	}
	body := `{"contractor_id":2,"property_id":5,"location":{"lat":0,"lng":0},"at":"2026-05-04T08:00:00Z"}`
	c, rec := newContext(http.MethodPost, "/api/time-entries/clock-in", body, 1, domain.RoleContractor)

	if err := NewTimeEntryHandler(stub).ClockIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp timeEntryResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.Offsite || resp.ClockOut != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTimeEntryHandler_ClockIn_RequiresLocation(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/api/time-entries/clock-in", `{"contractor_id":2,"property_id":5}`, 1, domain.RoleAdmin)
	if err := NewTimeEntryHandler(&stubTimeClockService{}).ClockIn(c); httpCode(err) != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestTimeEntryHandler_ClockOut_DefaultsToNow(t *testing.T) {
	stub := &stubTimeClockService{
		clockOutFn: func(ctx context.Context, entryID uint, at time.Time) (*domain.TimeEntry, error) {
			if entryID != 11 || !at.IsZero() {
				t.Fatalf("unexpected args %d %v", entryID, at)
			}
			out := time.Now()
			return &domain.TimeEntry{ID: 11, ClockOut: &out}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/time-entries/11/clock-out", "", 1, domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("11")

	if err := NewTimeEntryHandler(stub).ClockOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTimeEntryHandler_ClockOut_AlreadyClosed(t *testing.T) {
	stub := &stubTimeClockService{
		clockOutFn: func(ctx context.Context, entryID uint, at time.Time) (*domain.TimeEntry, error) {
			return nil, domain.ErrEntryClosed
		},
	}
	c, _ := newContext(http.MethodPost, "/api/time-entries/11/clock-out", "", 1, domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("11")
	if err := NewTimeEntryHandler(stub).ClockOut(c); !errors.Is(err, domain.ErrEntryClosed) {
		t.Fatalf("expected ErrEntryClosed, got %v", err)
	}
}

func TestTimeEntryHandler_List_RequiresContractor(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/api/time-entries", "", 1, domain.RoleAdmin)
	if err := NewTimeEntryHandler(&stubTimeClockService{}).List(c); httpCode(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTimeEntryHandler_List(t *testing.T) {
	stub := &stubTimeClockService{
		listFn: func(ctx context.Context, contractorID uint) ([]*domain.TimeEntry, error) {
			if contractorID != 2 {
				t.Fatalf("unexpected contractor %d", contractorID)
			}
			return []*domain.TimeEntry{{ID: 1}, {ID: 2}}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/time-entries?contractor_id=2", "", 1, domain.RoleAdmin)
	if err := NewTimeEntryHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []timeEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || len(resp) != 2 {
		t.Fatalf("expected two entries, got %s", rec.Body.String())
	}
}

func TestTransactionHandler_Record(t *testing.T) {
	stub := &stubLedgerService{
		recordFn: func(ctx context.Context, in ports.RecordTransactionInput) (*domain.Transaction, error) {
			if in.UserID != 4 || in.DebitCents != 2500 || in.PropertyID == nil || *in.PropertyID != 5 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Transaction{ID: 1, UserID: 4, DebitCents: 2500, PropertyID: in.PropertyID}, nil
		},
	}
	body := `{"description":"plumber","category":"repairs","debit_cents":2500,"property_id":5}`
	c, rec := newContext(http.MethodPost, "/api/transactions", body, 4, domain.RoleTenant)
	if err := NewTransactionHandler(stub).Record(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestTransactionHandler_Record_InvalidAmounts(t *testing.T) {
	stub := &stubLedgerService{
		recordFn: func(ctx context.Context, in ports.RecordTransactionInput) (*domain.Transaction, error) {
			return nil, domain.ErrInvalidAmounts
		},
	}
	body := `{"description":"x","category":"misc","debit_cents":1,"credit_cents":1}`
	c, _ := newContext(http.MethodPost, "/api/transactions", body, 4, domain.RoleTenant)
	if err := NewTransactionHandler(stub).Record(c); !errors.Is(err, domain.ErrInvalidAmounts) {
		t.Fatalf("expected ErrInvalidAmounts, got %v", err)
	}
}

func TestTransactionHandler_Balance(t *testing.T) {
	stub := &stubLedgerService{
		balanceFn: func(ctx context.Context, userID uint) (domain.Balance, error) {
			return domain.Balance{DebitCents: 25000, CreditCents: 100000}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/transactions/balance", "", 4, domain.RoleTenant)
	if err := NewTransactionHandler(stub).Balance(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp balanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.NetCents != 75000 {
		t.Fatalf("expected net 75000, got %d", resp.NetCents)
	}
}

func TestHealthHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	c, rec := newContext(http.MethodGet, "/health/ready", "", 0, "")
	if err := NewHealthHandler(map[string]HealthCheck{"postgres": ok}).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, rec = newContext(http.MethodGet, "/health/ready", "", 0, "")
	if err := NewHealthHandler(map[string]HealthCheck{"postgres": ok, "redis": down}).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var resp readinessResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Status != "degraded" || resp.Dependencies["redis"].Status != "unhealthy" || resp.Dependencies["postgres"].Status != "ok" {
		t.Fatalf("unexpected readiness payload: %+v", resp)
	}
}
