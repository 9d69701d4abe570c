package failure

import (
	"errors"
	"net/http"

	"hotel/shared/constant"

	"github.com/lib/pq"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// InvalidStayDates rejects a stay that does not last at least one night.
var InvalidStayDates = &Failure{Code: http.StatusBadRequest, Message: "check_out_date must be after check_in_date"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NoAvailability is returned when no room can take a requested stay. It is a refusal, not a fault.
func NoAvailability(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// FromUniqueViolation turns a postgres unique violation into a Conflict with the given message.
// Any other error is returned as is.
func FromUniqueViolation(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
		return Conflict(message)
	}

	return err
}

// FromForeignKeyViolation turns a postgres foreign key violation into a Conflict with the given message.
// Any other error is returned as is.
func FromForeignKeyViolation(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeFkViolation {
		return Conflict(message)
	}

	return err
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsNotFound reports whether err carries a not found code.
func IsNotFound(err error) bool {
	return GetCode(err) == http.StatusNotFound
}
