package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyline/property-api/internal/api/middleware"
	"github.com/keyline/property-api/internal/core/domain"
	"github.com/keyline/property-api/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	registerFn     func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	refreshFn      func(ctx context.Context, userID uint) (*ports.AuthResult, error)
	meFn           func(ctx context.Context, userID uint) (*domain.User, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Refresh(ctx context.Context, userID uint) (*ports.AuthResult, error) {
	return s.refreshFn(ctx, userID)
}

func (s *stubAuthService) Me(ctx context.Context, userID uint) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

type stubPropertyService struct {
	createFn func(ctx context.Context, in ports.CreatePropertyInput) (*domain.Property, error)
	getFn    func(ctx context.Context, id, ownerID uint) (*domain.Property, error)
	listFn   func(ctx context.Context, ownerID uint) ([]*domain.Property, error)
}

func (s *stubPropertyService) CreateProperty(ctx context.Context, in ports.CreatePropertyInput) (*domain.Property, error) {
	return s.createFn(ctx, in)
}

func (s *stubPropertyService) GetProperty(ctx context.Context, id, ownerID uint) (*domain.Property, error) {
	return s.getFn(ctx, id, ownerID)
}

func (s *stubPropertyService) ListProperties(ctx context.Context, ownerID uint) ([]*domain.Property, error) {
	return s.listFn(ctx, ownerID)
}

type stubContractorService struct {
	createFn func(ctx context.Context, in ports.CreateContractorInput) (*domain.Contractor, error)
	getFn    func(ctx context.Context, id uint) (*domain.Contractor, error)
	listFn   func(ctx context.Context) ([]*domain.Contractor, error)
}

func (s *stubContractorService) CreateContractor(ctx context.Context, in ports.CreateContractorInput) (*domain.Contractor, error) {
	return s.createFn(ctx, in)
}

func (s *stubContractorService) GetContractor(ctx context.Context, id uint) (*domain.Contractor, error) {
	return s.getFn(ctx, id)
}

func (s *stubContractorService) ListContractors(ctx context.Context) ([]*domain.Contractor, error) {
	return s.listFn(ctx)
}

type stubTimeClockService struct {
	clockInFn  func(ctx context.Context, in ports.ClockInInput) (*domain.TimeEntry, error)
	clockOutFn func(ctx context.Context, entryID uint, at time.Time) (*domain.TimeEntry, error)
	listFn     func(ctx context.Context, contractorID uint) ([]*domain.TimeEntry, error)
}

func (s *stubTimeClockService) ClockIn(ctx context.Context, in ports.ClockInInput) (*domain.TimeEntry, error) {
	return s.clockInFn(ctx, in)
}

func (s *stubTimeClockService) ClockOut(ctx context.Context, entryID uint, at time.Time) (*domain.TimeEntry, error) {
	return s.clockOutFn(ctx, entryID, at)
}

func (s *stubTimeClockService) ListTimeEntries(ctx context.Context, contractorID uint) ([]*domain.TimeEntry, error) {
	return s.listFn(ctx, contractorID)
}

type stubLedgerService struct {
	recordFn  func(ctx context.Context, in ports.RecordTransactionInput) (*domain.Transaction, error)
	listFn    func(ctx context.Context, userID uint) ([]*domain.Transaction, error)
	balanceFn func(ctx context.Context, userID uint) (domain.Balance, error)
}

func (s *stubLedgerService) RecordTransaction(ctx context.Context, in ports.RecordTransactionInput) (*domain.Transaction, error) {
	return s.recordFn(ctx, in)
}

func (s *stubLedgerService) ListTransactions(ctx context.Context, userID uint) ([]*domain.Transaction, error) {
	return s.listFn(ctx, userID)
}

func (s *stubLedgerService) Balance(ctx context.Context, userID uint) (domain.Balance, error) {
	return s.balanceFn(ctx, userID)
}

// newContext builds an echo context with the validator installed. A zero
// userID leaves the request unauthenticated.
func newContext(method, target, body string, userID uint, role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextRole, role)
	}
	return c, rec
}

// httpCode returns the status carried by an *echo.HTTPError, or 0.
func httpCode(err error) int {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return 0
	}
	return he.Code
}
