package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Error is an application error that knows which HTTP status it maps to.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

var (
	ErrUnauthenticated = New(http.StatusUnauthorized, "Authentication credentials were not provided.")
	ErrInvalidToken    = New(http.StatusUnauthorized, "Invalid or expired token.")
	ErrForbidden       = New(http.StatusForbidden, "You do not have permission to perform this action.")
	ErrNotFound        = New(http.StatusNotFound, "Not found.")
	ErrConflict        = New(http.StatusConflict, "Resource with this name already exists.")
	ErrInternal        = New(http.StatusInternalServerError, "Internal server error.")
)

// Abort writes the error as the response and stops the handler chain.
func Abort(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Wrap(http.StatusInternalServerError, "Internal server error.", err)
	}
	c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
}

// FromStore maps a store read error to the client-facing error: a missing
// row is "not found", anything else surfaces as a server fault.
func FromStore(err error) *Error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return Wrap(http.StatusInternalServerError, "Internal server error.", err)
}

// IsUniqueViolation reports whether a write failed on a unique constraint.
// Matched on the driver message: postgres in production, sqlite in tests.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
