package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/khadamat/marketplace-api/internal/core/ports"
)

// AdminHandler exposes the back-office credential operations. Routes are
// gated to the admin role by the RBAC middleware before these run.
type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

type suspensionRequest struct {
	Suspended *bool `json:"suspended" validate:"required"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type listUsersResponse struct {
	Success bool           `json:"success"`
	Users   []userResponse `json:"users"`
}

// ListUsers returns a page of accounts for the back-office.
//
// @Summary      List accounts
// @Tags         admin
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 20, max 100)"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  listUsersResponse
// @Failure      403     {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	users, err := h.adminService.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}

	resp := listUsersResponse{Success: true, Users: make([]userResponse, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, *toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// SetSuspension activates or suspends an account. Activation is how a
// fresh signup becomes usable.
//
// @Summary      Toggle account suspension
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      suspensionRequest  true  "Target suspension state"
// @Success      200   {object}  authResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/users/{id}/suspension [put]
func (h *AdminHandler) SetSuspension(c echo.Context) error {
	var req suspensionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "البيانات المرسلة غير صالحة"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if err := h.adminService.SetSuspended(c.Request().Context(), c.Param("id"), *req.Suspended); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Success: true})
}

// ResetPassword replaces a user's credential with an admin-chosen one.
//
// @Summary      Reset a user's password
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "User id"
// @Param        body  body      resetPasswordRequest  true  "New password"
// @Success      200   {object}  authResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/users/{id}/password [put]
func (h *AdminHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "البيانات المرسلة غير صالحة"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if err := h.adminService.ResetPassword(c.Request().Context(), c.Param("id"), req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Success: true})
}
