package catalog

import (
	"errors"
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

const TextCodeInvalidCatalog = "CONNECTOR_CATALOG_INVALID"

var (
	ErrUnmappedSyncMode    = errors.New("catalog: unmapped sync mode")
	ErrMissingStreamName   = errors.New("catalog: stream name is required")
	ErrInvalidFallbackMode = errors.New("catalog: invalid fallback sync mode")
)

// validationError wraps cause in a go-errors validation envelope whose field
// path points at the offending catalog entry. errors.Is still sees cause.
func validationError(cause error, field string, value any) *goerrors.Error {
	err := goerrors.NewValidation(cause.Error(), goerrors.FieldError{
		Field:   field,
		Message: cause.Error(),
		Value:   value,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeInvalidCatalog)
	err.Source = cause
	return err
}

func streamField(index int, path string) string {
	return fmt.Sprintf("streams[%d].%s", index, path)
}
