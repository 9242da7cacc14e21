package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gradepeek/svue-api/internal/core/domain"
	"github.com/gradepeek/svue-api/internal/core/ports"
)

// DistrictHandler exposes the district directory. Create and Delete are
// mounted under /admin.
type DistrictHandler struct {
	service ports.DistrictService
}

func NewDistrictHandler(service ports.DistrictService) *DistrictHandler {
	return &DistrictHandler{service: service}
}

// List handles GET /districts.
//
// @Summary      List known districts
// @Tags         districts
// @Produce      json
// @Success      200  {object}  districtListResponse
// @Failure      500  {object}  errorResponse
// @Router       /districts [get]
func (h *DistrictHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := districtListResponse{Districts: make([]districtResponse, 0, len(list))}
	for _, d := range list {
		resp.Districts = append(resp.Districts, toDistrictResponse(d))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /districts/:id.
//
// @Summary      Get a district
// @Tags         districts
// @Produce      json
// @Param        id   path      string  true  "District ID"
// @Success      200  {object}  districtResponse
// @Failure      404  {object}  errorResponse
// @Router       /districts/{id} [get]
func (h *DistrictHandler) Get(c echo.Context) error {
	d, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDistrictResponse(d))
}

// Create handles POST /admin/districts.
//
// @Summary      Register a district
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     AdminJWT
// @Param        body  body      registerDistrictRequest  true  "District"
// @Success      201   {object}  districtResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/districts [post]
func (h *DistrictHandler) Create(c echo.Context) error {
	var req registerDistrictRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	d, err := h.service.Register(c.Request().Context(), domain.District{
		ID:    req.ID,
		Name:  req.Name,
		Host:  req.Host,
		State: req.State,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toDistrictResponse(d))
}

// Delete handles DELETE /admin/districts/:id.
//
// @Summary      Remove a district
// @Tags         admin
// @Security     AdminJWT
// @Param        id   path  string  true  "District ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/districts/{id} [delete]
func (h *DistrictHandler) Delete(c echo.Context) error {
	if err := h.service.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toDistrictResponse(d *domain.District) districtResponse {
	return districtResponse{
		ID:    d.ID,
		Name:  d.Name,
		Host:  d.Host,
		State: d.State,
	}
}
