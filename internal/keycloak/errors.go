package keycloak

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Kind classifies an upstream failure.
type Kind string

const (
	KindInvalidCredentials  Kind = "invalid_credentials"
	KindInvalidRefreshToken Kind = "invalid_refresh_token"
	KindValidation          Kind = "validation"
	KindConflict            Kind = "conflict"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindUnknown             Kind = "unknown"
)

// Error is a classified upstream failure. It always carries the original
// status code so callers can map it 1:1 to a transport response, and exactly
// one message intended for the caller.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	// Field names the offending request field for validation errors.
	Field string
}

func (e *Error) Error() string {
	return fmt.Sprintf("keycloak: %s (%d): %s", e.Kind, e.StatusCode, e.Message)
}

// unavailable classifies a transport-level failure reaching the IdP. It must
// never be confused with a 4xx business rejection.
func unavailable(err error) *Error {
	return &Error{
		Kind:       KindUpstreamUnavailable,
		StatusCode: http.StatusServiceUnavailable,
		Message:    "identity server unavailable: " + err.Error(),
	}
}

const defaultErrorMessage = "Unknown error"

// Keycloak answers with several unrelated error body shapes. Translation
// attempts the typed parses in a fixed priority order (field shape, then
// description shape, then plain errorMessage shape) and falls back to a
// default message when none matches.

type descriptionBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

type fieldBody struct {
	Field        string   `json:"field"`
	ErrorMessage string   `json:"errorMessage"`
	Params       []string `json:"params"`
}

type messageBody struct {
	ErrorMessage string `json:"errorMessage"`
}

func parseDescription(body []byte) (string, bool) {
	var b descriptionBody
	if err := json.Unmarshal(body, &b); err != nil || b.Description == "" {
		return "", false
	}
	return b.Description, true
}

func parseField(body []byte) (field, message string, ok bool) {
	var b fieldBody
	if err := json.Unmarshal(body, &b); err != nil || b.Field == "" || b.ErrorMessage == "" {
		return "", "", false
	}
	return b.Field, b.ErrorMessage, true
}

func parseMessage(body []byte) (string, bool) {
	var b messageBody
	if err := json.Unmarshal(body, &b); err != nil || b.ErrorMessage == "" {
		return "", false
	}
	return b.ErrorMessage, true
}

// translateLogin classifies a failed password-grant exchange.
func translateLogin(status int, body []byte) *Error {
	if status != http.StatusUnauthorized {
		return translateGeneric(status, body)
	}
	message := "User is UNAUTHORIZED"
	if d, ok := parseDescription(body); ok {
		message = d
	}
	return &Error{Kind: KindInvalidCredentials, StatusCode: status, Message: message}
}

// translateRefresh classifies a failed refresh-token exchange.
func translateRefresh(status int, body []byte) *Error {
	if status != http.StatusBadRequest {
		return translateGeneric(status, body)
	}
	message := defaultErrorMessage
	if d, ok := parseDescription(body); ok {
		message = d
	}
	return &Error{Kind: KindInvalidRefreshToken, StatusCode: status, Message: message}
}

// translateRegister classifies a failed admin user creation.
func translateRegister(status int, body []byte) *Error {
	switch status {
	case http.StatusBadRequest:
		if field, message, ok := parseField(body); ok {
			return &Error{Kind: KindValidation, StatusCode: status, Message: message, Field: field}
		}
		message := defaultErrorMessage
		if d, ok := parseDescription(body); ok {
			message = d
		}
		return &Error{Kind: KindValidation, StatusCode: status, Message: message}
	case http.StatusConflict:
		message := "User exists with same email or username"
		if m, ok := parseMessage(body); ok {
			message = m
		}
		return &Error{Kind: KindConflict, StatusCode: status, Message: message}
	default:
		return translateGeneric(status, body)
	}
}

// translateGeneric classifies any other non-success upstream response.
func translateGeneric(status int, body []byte) *Error {
	message := defaultErrorMessage
	if m, ok := parseMessage(body); ok {
		message = m
	} else if d, ok := parseDescription(body); ok {
		message = d
	}
	return &Error{Kind: KindUnknown, StatusCode: status, Message: message}
}
