package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyline/property-api/internal/api/metrics"
	"github.com/keyline/property-api/internal/core/ports"
)

type TimeEntryHandler struct {
	service ports.TimeClockService
}

func NewTimeEntryHandler(service ports.TimeClockService) *TimeEntryHandler {
	return &TimeEntryHandler{service: service}
}

// ClockIn opens a time entry for a contractor at a property.
//
// @Summary      Clock in
// @Description  The entry is flagged offsite when the reported location is outside the property geofence.
// @Tags         time-entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clockInRequest  true  "Clock-in details"
// @Success      201   {object}  timeEntryResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse  "Contractor already clocked in"
// @Failure      422   {object}  errorResponse
// @Router       /api/time-entries/clock-in [post]
func (h *TimeEntryHandler) ClockIn(c echo.Context) error {
	var req clockInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	entry, err := h.service.ClockIn(c.Request().Context(), ports.ClockInInput{
		ContractorID: req.ContractorID,
		PropertyID:   req.PropertyID,
		Location:     *fromCoordinates(req.Location),
		At:           optionalTime(req.At),
	})
	if err != nil {
		return err
	}
	metrics.TimeEntriesTotal.WithLabelValues("clock_in", strconv.FormatBool(entry.Offsite)).Inc()

	return c.JSON(http.StatusCreated, toTimeEntryResponse(entry))
}

// ClockOut closes an open time entry.
//
// @Summary      Clock out
// @Tags         time-entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true   "Time entry ID"
// @Param        body  body      clockOutRequest  false  "Clock-out time"
// @Success      200   {object}  timeEntryResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse  "Time entry already closed"
// @Failure      422   {object}  errorResponse
// @Router       /api/time-entries/{id}/clock-out [post]
func (h *TimeEntryHandler) ClockOut(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req clockOutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	entry, err := h.service.ClockOut(c.Request().Context(), id, optionalTime(req.At))
	if err != nil {
		return err
	}
	metrics.TimeEntriesTotal.WithLabelValues("clock_out", strconv.FormatBool(entry.Offsite)).Inc()

	return c.JSON(http.StatusOK, toTimeEntryResponse(entry))
}

// List returns a contractor's time entries in clock-in order.
//
// @Summary      List time entries
// @Tags         time-entries
// @Produce      json
// @Security     BearerAuth
// @Param        contractor_id  query     int  true  "Contractor ID"
// @Success      200            {array}   timeEntryResponse
// @Failure      400            {object}  errorResponse
// @Router       /api/time-entries [get]
func (h *TimeEntryHandler) List(c echo.Context) error {
	contractorID, err := parseID(c.QueryParam("contractor_id"), "contractor_id")
	if err != nil {
		return err
	}

	entries, err := h.service.ListTimeEntries(c.Request().Context(), contractorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(entries, toTimeEntryResponse))
}

func optionalTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

