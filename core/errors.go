package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ConnectorErrorBadInput          = "CONNECTOR_BAD_INPUT"
	ConnectorErrorNotFound          = "CONNECTOR_NOT_FOUND"
	ConnectorErrorOAuthFlowNotFound = "CONNECTOR_OAUTH_FLOW_NOT_FOUND"
	ConnectorErrorLookupFailed      = "CONNECTOR_LOOKUP_FAILED"
	ConnectorErrorInternal          = "CONNECTOR_INTERNAL_ERROR"
)

func connectorErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureConnectorErrorEnvelope(richErr)
	}

	switch {
	case errors.Is(err, ErrOAuthFlowNotFound):
		return wrapConnectorError(err, goerrors.CategoryNotFound, ConnectorErrorOAuthFlowNotFound)
	case errors.Is(err, ErrDefinitionNotFound):
		return wrapConnectorError(err, goerrors.CategoryNotFound, ConnectorErrorNotFound)
	case errors.Is(err, ErrLookupFailed):
		return wrapConnectorError(err, goerrors.CategoryExternal, ConnectorErrorLookupFailed)
	case errors.Is(err, ErrInvalidConnectorKind):
		return wrapConnectorError(err, goerrors.CategoryBadInput, ConnectorErrorBadInput)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "not found"):
		return wrapConnectorError(err, goerrors.CategoryNotFound, ConnectorErrorNotFound)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return wrapConnectorError(err, goerrors.CategoryBadInput, ConnectorErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureConnectorErrorEnvelope(mapped)
}

func wrapConnectorError(err error, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureConnectorErrorEnvelope(
		goerrors.Wrap(err, category, err.Error()).
			WithTextCode(textCode),
	)
}

func ensureConnectorErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = connectorHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultConnectorTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultConnectorTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ConnectorErrorBadInput
	case goerrors.CategoryNotFound:
		return ConnectorErrorNotFound
	case goerrors.CategoryExternal:
		return ConnectorErrorLookupFailed
	default:
		return ConnectorErrorInternal
	}
}

func connectorHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// IsNotFound reports whether err signals a missing connector definition or
// OAuth flow, whether or not it has been mapped to a go-errors envelope.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDefinitionNotFound) || errors.Is(err, ErrOAuthFlowNotFound) {
		return true
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == goerrors.CategoryNotFound
	}
	return false
}
