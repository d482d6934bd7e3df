package smartsheet

import (
	"errors"
	"fmt"
)

// ErrMissingToken indicates a client was constructed without an API access token.
var ErrMissingToken = errors.New("missing Smartsheet API token")

// ErrInvalidSchema is wrapped by every schema-definition error.
var ErrInvalidSchema = errors.New("invalid schema")

// Reconciliation failures.
var (
	ErrTypeMismatch        = errors.New("column type mismatch")
	ErrOptionsMismatch     = errors.New("column options mismatch")
	ErrMissingSchemaEntry  = errors.New("column not found in schema")
	ErrMissingRemoteColumn = errors.New("schema column not found in sheet")
)

// Transcoding failures.
var (
	ErrInvalidValue  = errors.New("invalid value")
	ErrDataIntegrity = errors.New("remote value does not match schema")
)

// Not-found failures.
var (
	ErrSheetNotFound = errors.New("sheet not found")
	ErrRowNotFound   = errors.New("row not found")
)

// ErrForeignRow is returned when a row is written through a sheet it was not
// read from.
var ErrForeignRow = errors.New("row was not read through this sheet")

// SchemaError describes a problem with a locally declared schema.
type SchemaError struct {
	Key     string // schema key, empty for schema-wide problems
	Message string
}

func (e *SchemaError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("invalid schema: %s", e.Message)
	}
	return fmt.Sprintf("invalid schema column %q: %s", e.Key, e.Message)
}

func (e *SchemaError) Unwrap() error {
	return ErrInvalidSchema
}

// ReconcileError describes a mismatch between a remote column and the schema.
type ReconcileError struct {
	Title    string // remote column title (or declared title for a missing remote column)
	Expected string
	Actual   string
	Err      error // one of the reconciliation sentinels
}

func (e *ReconcileError) Error() string {
	switch e.Err {
	case ErrTypeMismatch, ErrOptionsMismatch:
		return fmt.Sprintf("column %q: %v: expected %s, got %s", e.Title, e.Err, e.Expected, e.Actual)
	default:
		return fmt.Sprintf("column %q: %v", e.Title, e.Err)
	}
}

func (e *ReconcileError) Unwrap() error {
	return e.Err
}

// ValueError describes a cell value that does not satisfy its column type.
type ValueError struct {
	Key   string
	Title string
	Value any
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("value %v for column %q (%s): %v", e.Value, e.Title, e.Key, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response from the Smartsheet API.
type APIError struct {
	StatusCode int
	ErrorCode  int    `json:"errorCode"`
	Message    string `json:"message"`
	RefID      string `json:"refId"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("smartsheet api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("smartsheet api: status %d (code %d): %s", e.StatusCode, e.ErrorCode, e.Message)
}

// Temporary reports whether the request may succeed if retried.
func (e *APIError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
