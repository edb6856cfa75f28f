package auth

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifica el tipo de falla de autenticación/autorización.
type Code string

const (
	CodeHeaderMissing Code = "authorization_header_missing"
	CodeInvalidHeader Code = "invalid_header"
	CodeInvalidClaims Code = "invalid_claims"
	CodeUnauthorized  Code = "unauthorized"
	CodeTokenExpired  Code = "token_expired"
)

// ErrKeySetFetch envuelve cualquier falla al traer el JWKS.
var ErrKeySetFetch = errors.New("jwks fetch failed")

// Error es la falla tipada que viaja sin modificarse hasta el borde HTTP.
type Error struct {
	Code        Code
	Description string
	Status      int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%d)", e.Code, e.Description, e.Status)
}

func newError(code Code, status int, description string) *Error {
	return &Error{Code: code, Description: description, Status: status}
}

func ErrHeaderMissing() *Error {
	return newError(CodeHeaderMissing, http.StatusUnauthorized, "Authorization header is expected.")
}

func ErrHeaderNotBearer() *Error {
	return newError(CodeInvalidHeader, http.StatusUnauthorized, `Authorization header must start with "Bearer".`)
}

func ErrTokenNotFound() *Error {
	return newError(CodeInvalidHeader, http.StatusUnauthorized, "Token not found.")
}

func ErrHeaderNotBearerToken() *Error {
	return newError(CodeInvalidHeader, http.StatusUnauthorized, "Authorization header must be bearer token.")
}

func ErrMalformed() *Error {
	return newError(CodeInvalidHeader, http.StatusUnauthorized, "Authorization malformed.")
}

func ErrKeyNotFound() *Error {
	return newError(CodeInvalidHeader, http.StatusBadRequest, "Unable to find the appropriate key.")
}

func ErrTokenExpired() *Error {
	return newError(CodeTokenExpired, http.StatusUnauthorized, "Token expired.")
}

func ErrIncorrectClaims() *Error {
	return newError(CodeInvalidClaims, http.StatusUnauthorized, "Incorrect claims. Please, check the audience and issuer.")
}

func ErrUnparseable() *Error {
	return newError(CodeInvalidHeader, http.StatusBadRequest, "Unable to parse authentication token.")
}

func ErrPermissionsMissing() *Error {
	return newError(CodeInvalidClaims, http.StatusBadRequest, "Permissions not included in JWT.")
}

func ErrPermissionNotFound() *Error {
	return newError(CodeUnauthorized, http.StatusForbidden, "Permission not found.")
}

// AsError extrae un *Error de una cadena de errores.
func AsError(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
