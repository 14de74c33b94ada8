package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-sqlite3"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"` // additional context (missing ids, constraint text, etc.)
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondBadRequestDetails sends a 400 with structured error detail.
func respondBadRequestDetails(c *gin.Context, message string, details any) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Details: details})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondServerError sends a 500 with the failure text attached as detail.
func respondServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "server error", Details: err.Error()})
}

// respondConstraintViolation reports a storage-level constraint failure
// (uniqueness, foreign key) as a 400 with the raw constraint text. The
// write has already been rolled back by the repository transaction.
func respondConstraintViolation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "integrity error", Details: err.Error()})
}

// --- Success Response Helpers ---

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondDeleted sends the 200 {"status": "deleted"} body shared by all
// delete endpoints.
func respondDeleted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// --- Error Classification ---

// isConstraintViolation reports whether err originates from a sqlite
// constraint (uniqueness, foreign key).
func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

// --- Dates ---

// parseDate parses a YYYY-MM-DD value. Empty input means "no date" and
// yields nil without error, mirroring the wire contract where dates are
// cleared by sending an empty string.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// formatDate renders a date as YYYY-MM-DD, or JSON null when absent.
func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.DateOnly)
}

// --- Partial Bodies ---

// bindPartial decodes a request body whose semantics depend on key
// presence: a field is only touched when its key appears in the JSON
// object. A missing body is treated as an empty object. Returns false
// after responding 400 for malformed JSON.
func bindPartial(c *gin.Context) (map[string]json.RawMessage, bool) {
	body := map[string]json.RawMessage{}
	if err := c.ShouldBindJSON(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return body, true
		}
		respondBadRequest(c, "invalid request body")
		return nil, false
	}
	return body, true
}

// asString decodes a raw JSON field into a string. JSON null decodes to "".
func asString(raw json.RawMessage) (string, error) {
	var s string
	err := json.Unmarshal(raw, &s)
	return s, err
}

// asInt decodes a raw JSON field into an int, rejecting null, fractions
// and non-numeric values.
func asInt(raw json.RawMessage) (int, error) {
	var n *int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	if n == nil {
		return 0, errors.New("null is not an integer")
	}
	return *n, nil
}

// asUintPtr decodes a raw JSON field into an optional id. JSON null yields
// nil.
func asUintPtr(raw json.RawMessage) (*uint, error) {
	var id *uint
	err := json.Unmarshal(raw, &id)
	return id, err
}
