package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyline/property-api/internal/core/ports"
)

type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// Create registers a property owned by the caller.
//
// @Summary      Create a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPropertyRequest  true  "Property details"
// @Success      201   {object}  propertyResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req createPropertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.CreateProperty(c.Request().Context(), ports.CreatePropertyInput{
		OwnerID:        userID,
		OwnerRole:      role,
		Address:        req.Address,
		RentCents:      req.RentCents,
		GeofenceRadius: req.GeofenceRadius,
		Location:       fromCoordinates(req.Location),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPropertyResponse(p))
}

// Get returns one of the caller's properties.
//
// @Summary      Get a property
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Property ID"
// @Success      200  {object}  propertyResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.service.GetProperty(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPropertyResponse(p))
}

// List returns the caller's properties.
//
// @Summary      List properties
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  propertyResponse
// @Router       /api/properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	props, err := h.service.ListProperties(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(props, toPropertyResponse))
}
