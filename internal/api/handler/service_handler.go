package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/khadamat/marketplace-api/internal/core/domain"
	"github.com/khadamat/marketplace-api/internal/core/ports"
)

// ServiceHandler exposes the seller listing catalog. Reads are public,
// mutations go through the catalog service's ownership checks.
type ServiceHandler struct {
	catalog ports.CatalogService
}

func NewServiceHandler(catalog ports.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

type createServiceRequest struct {
	Title       string  `json:"title" validate:"required,min=3"`
	TitleAr     string  `json:"title_ar" validate:"required,min=3"`
	Description string  `json:"description" validate:"required"`
	PriceSAR    float64 `json:"price_sar" validate:"required,gt=0"`
}

type updateServiceRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3"`
	TitleAr     *string  `json:"title_ar" validate:"omitempty,min=3"`
	Description *string  `json:"description"`
	PriceSAR    *float64 `json:"price_sar" validate:"omitempty,gt=0"`
	Active      *bool    `json:"active"`
}

type serviceResponse struct {
	Success bool            `json:"success"`
	Service *domain.Service `json:"service"`
}

type serviceListResponse struct {
	Success  bool             `json:"success"`
	Services []domain.Service `json:"services"`
}

// Create registers a new listing owned by the calling seller.
//
// @Summary      Create a service listing
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        body  body      createServiceRequest  true  "Listing payload"
// @Success      201   {object}  serviceResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/services [post]
func (h *ServiceHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createServiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "البيانات المرسلة غير صالحة"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	svc, err := h.catalog.Create(c.Request().Context(), claims, ports.CreateServiceInput{
		Title:       req.Title,
		TitleAr:     req.TitleAr,
		Description: req.Description,
		PriceSAR:    req.PriceSAR,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, serviceResponse{Success: true, Service: svc})
}

// Get returns a single listing. Public for active listings; a
// deactivated one is visible only to its owner or an admin, so the
// session is resolved when present.
//
// @Summary      Fetch a service listing
// @Tags         services
// @Produce      json
// @Param        id   path      string  true  "Service id"
// @Success      200  {object}  serviceResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/services/{id} [get]
func (h *ServiceHandler) Get(c echo.Context) error {
	svc, err := h.catalog.Get(c.Request().Context(), ctxOptionalClaims(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serviceResponse{Success: true, Service: svc})
}

// List returns a page of listings. Public.
//
// @Summary      List service listings
// @Tags         services
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 20, max 100)"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  serviceListResponse
// @Router       /v1/services [get]
func (h *ServiceHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	services, err := h.catalog.List(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serviceListResponse{Success: true, Services: services})
}

// Update patches a listing. Owner or admin only.
//
// @Summary      Update a service listing
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Service id"
// @Param        body  body      updateServiceRequest  true  "Fields to change"
// @Success      200   {object}  serviceResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/services/{id} [put]
func (h *ServiceHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateServiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "البيانات المرسلة غير صالحة"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	svc, err := h.catalog.Update(c.Request().Context(), claims, c.Param("id"), ports.UpdateServiceInput{
		Title:       req.Title,
		TitleAr:     req.TitleAr,
		Description: req.Description,
		PriceSAR:    req.PriceSAR,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serviceResponse{Success: true, Service: svc})
}

// Delete removes a listing. Owner or admin only.
//
// @Summary      Delete a service listing
// @Tags         services
// @Produce      json
// @Param        id   path      string  true  "Service id"
// @Success      200  {object}  authResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/services/{id} [delete]
func (h *ServiceHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.catalog.Delete(c.Request().Context(), claims, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Success: true})
}
