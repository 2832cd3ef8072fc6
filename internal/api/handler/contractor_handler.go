package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyline/property-api/internal/core/ports"
)

type ContractorHandler struct {
	service ports.ContractorService
}

func NewContractorHandler(service ports.ContractorService) *ContractorHandler {
	return &ContractorHandler{service: service}
}

// Create registers a contractor.
//
// @Summary      Create a contractor
// @Tags         contractors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createContractorRequest  true  "Contractor details"
// @Success      201   {object}  contractorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/contractors [post]
func (h *ContractorHandler) Create(c echo.Context) error {
	var req createContractorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ct, err := h.service.CreateContractor(c.Request().Context(), ports.CreateContractorInput{
		Name:             req.Name,
		Email:            req.Email,
		PayRateCents:     req.PayRateCents,
		BillingRateCents: req.BillingRateCents,
		Plan:             req.Plan,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toContractorResponse(ct))
}

// Get returns a contractor by id.
//
// @Summary      Get a contractor
// @Tags         contractors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Contractor ID"
// @Success      200  {object}  contractorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/contractors/{id} [get]
func (h *ContractorHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ct, err := h.service.GetContractor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContractorResponse(ct))
}

// List returns all contractors.
//
// @Summary      List contractors
// @Tags         contractors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  contractorResponse
// @Router       /api/contractors [get]
func (h *ContractorHandler) List(c echo.Context) error {
	list, err := h.service.ListContractors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(list, toContractorResponse))
}
