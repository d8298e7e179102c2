package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/finanzas/internal/respond"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation error")

// Client-facing messages.
const (
	MsgInvalidJSON        = "Datos inválidos"
	MsgCredentialsMissing = "Email y password son requeridos"
	MsgCredentialsType    = "Email y password deben ser texto"
	MsgPasswordTooLong    = "La contraseña no puede superar 72 bytes"
	MsgEmailExists        = "El email ya está registrado"
	MsgUserNotFound       = "Usuario no encontrado"
	MsgWrongPassword      = "Contraseña incorrecta"
	MsgRegistered         = "Usuario registrado exitosamente"
	MsgLoggedIn           = "Login exitoso"
	MsgPersonalSaved      = "Información personal guardada correctamente"
	MsgFinancialSaved     = "Información financiera guardada correctamente"
	MsgRegisterFailed     = "Error en el registro"
	MsgLoginFailed        = "Error en el login"
	MsgSaveFailed         = "Error al guardar la información"
	MsgFetchFailed        = "Error al obtener la información"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

// ValidationError is a 400 whose Message is returned to the client as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// decodeObject decodes the request body as a JSON object. Numbers are kept
// as json.Number so that their text survives.
func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, &ValidationError{Message: MsgInvalidJSON}
	}
	if body == nil {
		return nil, &ValidationError{Message: MsgInvalidJSON}
	}
	return body, nil
}

// writeError answers with the message of a *ValidationError, or with a 500
// carrying fallback for anything else.
func writeError(w http.ResponseWriter, logger *slog.Logger, fallback string, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		respond.Error(w, http.StatusBadRequest, ve.Message)
		return
	}
	logger.Error(fallback, "error", err)
	respond.Error(w, http.StatusInternalServerError, fallback)
}
