package bizerror

import (
	"errors"
	"net/http"

	"mypage/misc"
)

var ErrUnauthenticated = errors.New("unauthenticated")
var ErrForbidden = errors.New("forbidden")
var ErrNotFound = errors.New("record not found")
var ErrInvalidPassword = errors.New("invalid password")
var ErrNicknameConflict = errors.New("nickname is already in use")
var ErrInvalidRecoveryToken = errors.New("invalid recovery token")

type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}
func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "common.bad_param"
}
func (e *ErrBadParam) Respond() *misc.BizErrorDetail {
	message := "common.bad_param"
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &misc.BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: message, Data: nil}
}

// FieldValidationError is a validation failure bound to a single input field.
// A nil *FieldValidationError means the field satisfies its rule.
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldValidationError) Respond() *misc.BizErrorDetail {
	return &misc.BizErrorDetail{Status: http.StatusBadRequest, Code: "bad_request.validation_failed",
		Message: e.Message, Data: map[string]string{"field": e.Field}}
}
