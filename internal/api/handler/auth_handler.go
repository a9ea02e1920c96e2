package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/khadamat/marketplace-api/internal/api/metrics"
	"github.com/khadamat/marketplace-api/internal/api/session"
	"github.com/khadamat/marketplace-api/internal/core/domain"
	"github.com/khadamat/marketplace-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	transport   *session.Transport
}

func NewAuthHandler(authService ports.AuthService, transport *session.Transport) *AuthHandler {
	return &AuthHandler{authService: authService, transport: transport}
}

func toUserResponse(u *domain.User) *userResponse {
	return &userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Suspended: u.Suspended,
		CreatedAt: u.CreatedAt,
	}
}

func toProfileResponse(p *domain.Profile) *profileResponse {
	if p == nil {
		return nil
	}
	return &profileResponse{DisplayName: p.DisplayName, Bio: p.Bio, Phone: p.Phone}
}

// Signup creates a new account. The account starts suspended and there
// is no auto-login: no cookie is set before an admin activates it.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "البيانات المرسلة غير صالحة"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, profile, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "البريد الإلكتروني مسجل مسبقاً"})
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "البيانات المرسلة غير صالحة"})
		}
		return err
	}

	metrics.SignupsTotal.WithLabelValues(user.Role).Inc()

	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		User:    toUserResponse(user),
		Profile: toProfileResponse(profile),
	})
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.LoginDuration.Observe(time.Since(start).Seconds())
	}()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "البيانات المرسلة غير صالحة"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "البريد الإلكتروني أو كلمة المرور غير صحيحة"})
		case errors.Is(err, domain.ErrAccountSuspended):
			// Still 401: a login attempt never authenticates, so the
			// caller is not in 403 territory. The suspended flag is
			// the only extra detail the UI gets.
			metrics.LoginsTotal.WithLabelValues("suspended").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{
				Error:     "الحساب موقوف، يرجى التواصل مع الدعم",
				Suspended: true,
			})
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "محاولات تسجيل دخول كثيرة، حاول مرة أخرى لاحقاً"})
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	h.transport.Set(c, result.Token, result.ExpiresAt)
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		User:    toUserResponse(result.User),
		Profile: toProfileResponse(result.Profile),
	})
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; there is no server-side revocation.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.transport.Clear(c)
	return c.JSON(http.StatusOK, authResponse{Success: true})
}

// Me returns the live account and profile for the current session.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, profile, err := h.authService.Me(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		User:    toUserResponse(user),
		Profile: toProfileResponse(profile),
	})
}

// ChangePassword rotates the caller's credential after re-verifying the
// old password against the store.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Old and new password"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/me/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "البيانات المرسلة غير صالحة"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if err := h.authService.ChangePassword(c.Request().Context(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Success: true})
}
