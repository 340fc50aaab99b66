package rest

import (
	"fmt"
	"net/http"
	"strings"

	Logger "github.com/Luismorlan/cookmux/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Core error taxonomy. Every failure a handler can see is one of the four
// types below; anything else is reported as an internal error. All of them are
// recoverable at the request boundary.

// ValidationError collects per-field complaints about a payload so the caller
// gets one complete report instead of the first failure only.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field string, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	parts := []string{}
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Resource string
	Id       string
}

func (e *NotFoundError) Error() string {
	if e.Id == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.Id)
}

// ConflictError reports a uniqueness violation on add, distinct from
// validation failures so callers can detect "already done".
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// PermissionError reports an actor that is not allowed to mutate the target.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

// writeError maps a core error onto a structured JSON rejection. Unknown
// errors are logged and surfaced as 500 without leaking internals.
func writeError(c *gin.Context, err error) {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		conflictErr   *ConflictError
		permissionErr *PermissionError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErr.Fields})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"detail": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"detail": conflictErr.Error()})
	case errors.As(err, &permissionErr):
		c.JSON(http.StatusForbidden, gin.H{"detail": permissionErr.Error()})
	default:
		Logger.Log.Error("unhandled error: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}
