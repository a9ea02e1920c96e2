package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/khadamat/marketplace-api/internal/api/metrics"
	"github.com/khadamat/marketplace-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors,
// matching the shape handlers build inline: success is always false
// here. User-facing messages are Arabic, matching the product locale.
type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Suspended bool   `json:"suspended,omitempty"`
}

// Arabic user-facing messages for the error taxonomy.
const (
	msgInvalidCredentials = "البريد الإلكتروني أو كلمة المرور غير صحيحة"
	msgAccountSuspended   = "الحساب موقوف، يرجى التواصل مع الدعم"
	msgTooManyAttempts    = "محاولات تسجيل دخول كثيرة، حاول مرة أخرى لاحقاً"
	msgForbidden          = "غير مصرح لك بتنفيذ هذا الإجراء"
	msgUserNotFound       = "المستخدم غير موجود"
	msgUserExists         = "البريد الإلكتروني مسجل مسبقاً"
	msgServiceNotFound    = "الخدمة غير موجودة"
	msgOrderNotFound      = "الطلب غير موجود"
	msgInvalidTransition  = "لا يمكن تغيير حالة الطلب إلى الحالة المطلوبة"
	msgStoreUnavailable   = "الخدمة غير متوفرة مؤقتاً، حاول مرة أخرى"
	msgInternal           = "حدث خطأ داخلي في الخادم"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain error taxonomy to deterministic HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<localized message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, guard rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Missing/invalid session collapses to 401; forbidden stays 403.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: msgInvalidCredentials}
	case errors.Is(err, domain.ErrAccountSuspended):
		// 401, not 403: a suspended account no longer holds an
		// acceptable credential, and the flag gives the client a
		// support contact path.
		return http.StatusUnauthorized, errorResponse{Error: msgAccountSuspended, Suspended: true}
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, errorResponse{Error: msgTooManyAttempts}
	case errors.Is(err, domain.ErrForbidden):
		// Ownership denials bubble up from the service layer; the coarse
		// role gate counts its own denials in the RBAC middleware.
		metrics.AuthzDenialsTotal.WithLabelValues("ownership").Inc()
		return http.StatusForbidden, errorResponse{Error: msgForbidden}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: msgUserNotFound}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Error: msgUserExists}
	case errors.Is(err, domain.ErrServiceNotFound):
		return http.StatusNotFound, errorResponse{Error: msgServiceNotFound}
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, errorResponse{Error: msgOrderNotFound}
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, errorResponse{Error: msgInvalidTransition}
	case errors.Is(err, domain.ErrStoreUnavailable):
		// The only retryable class, and only by the client.
		log.Warn().Err(err).Str("path", c.Path()).Msg("store unavailable")
		return http.StatusServiceUnavailable, errorResponse{Error: msgStoreUnavailable}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: msgInternal}
}
