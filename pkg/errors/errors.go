package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// CustomizedError carries a caller-facing message, an HTTP status code and a
// trace chain recording which layers the error passed through.
type CustomizedError struct {
	cause   error
	message string
	trace   []string
	wrap    error
	code    int
}

func New(trace, message string, err error) *CustomizedError {
	return &CustomizedError{
		cause:   err,
		message: message,
		trace:   []string{trace},
		code:    http.StatusInternalServerError,
	}
}

func Wrap(err error, trace, message string) *CustomizedError {
	ce := &CustomizedError{
		cause:   err,
		message: message,
		trace:   []string{trace},
		wrap:    err,
		code:    http.StatusInternalServerError,
	}
	if income, ok := err.(*CustomizedError); ok {
		ce.code = income.code
	}
	return ce
}

// Trace appends a trace point to an existing CustomizedError, or wraps a
// plain error keeping its message.
func Trace(trace string, err error) *CustomizedError {
	if ce, ok := err.(*CustomizedError); ok {
		ce.trace = append(ce.trace, trace)
		return ce
	}
	return Wrap(err, trace, err.Error())
}

func (e *CustomizedError) Code(c int) *CustomizedError {
	e.code = c
	return e
}

func (e *CustomizedError) GetCode() int {
	return e.code
}

func (e *CustomizedError) Message() string {
	if e.message == "" {
		return e.cause.Error()
	}
	return e.message
}

func (e *CustomizedError) Error() string {
	cause := ""
	if e.cause != nil {
		cause = e.cause.Error()
	}
	return fmt.Sprintf("trace: %s, message: %s, cause: %s", strings.Join(e.trace, "."), e.message, cause)
}

func (e *CustomizedError) Unwrap() error {
	return e.cause
}
