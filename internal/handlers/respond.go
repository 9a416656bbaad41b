package handlers

import (
	"errors"
	"net/http"

	"github.com/corebank/ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusForError maps the error taxonomy onto HTTP status codes.
// Deterministic errors map to 4xx; storage failures surface as 500 so callers
// know a retry may be worthwhile.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidState),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error as a JSON body with the mapped status code.
// Internal errors are not echoed back to the client.
func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
