package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Messages are produced in Arabic since validation failures reach end users.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into an Arabic message.
// Field names stay in English so clients can match them programmatically.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("الحقل %s مطلوب", field)
	case "email":
		return fmt.Sprintf("الحقل %s يجب أن يكون بريداً إلكترونياً صالحاً", field)
	case "gt":
		return fmt.Sprintf("الحقل %s يجب أن يكون أكبر من %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("الحقل %s يجب ألا يقل عن %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("الحقل %s يجب أن يكون أحد القيم: %s", field, fe.Param())
	default:
		return fmt.Sprintf("الحقل %s غير صالح (%s)", field, fe.Tag())
	}
}
