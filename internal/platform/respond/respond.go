package respond

import (
	"encoding/json"
	"net/http"

	"coffee-shop/internal/ports/auth"
)

// ErrorBody es la forma única de error de la API.
type ErrorBody struct {
	Success bool      `json:"success"`
	Error   int       `json:"error"`
	Message string    `json:"message"`
	Code    auth.Code `json:"code,omitempty"`
}

// Mensajes estándar por status (los mismos que expone la API pública).
const (
	MsgBadRequest    = "bad request"
	MsgNotFound      = "not found"
	MsgNotAllowed    = "method not allowed"
	MsgUnprocessable = "unprocessable"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error escribe {success:false, error:<status>, message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{
		Success: false,
		Error:   status,
		Message: message,
	})
}

// AuthError escribe la falla de auth sin modificar status ni descripción.
func AuthError(w http.ResponseWriter, err *auth.Error) {
	JSON(w, err.Status, ErrorBody{
		Success: false,
		Error:   err.Status,
		Message: err.Description,
		Code:    err.Code,
	})
}

func BadRequest(w http.ResponseWriter)    { Error(w, http.StatusBadRequest, MsgBadRequest) }
func NotFound(w http.ResponseWriter)      { Error(w, http.StatusNotFound, MsgNotFound) }
func Unprocessable(w http.ResponseWriter) { Error(w, http.StatusUnprocessableEntity, MsgUnprocessable) }
