// Package respond centraliza el formato de respuesta HTTP de los módulos.
package respond

import (
	"encoding/json"
	"net/http"
)

// GenericFailure es el mensaje para cualquier falla que no sea validación ni conflicto.
const GenericFailure = "Falha no sistema! Tente novamente"

// Body es el cuerpo de toda respuesta con mensaje (éxito o error).
type Body struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Body{Message: msg})
}

// Invalid responde 422 con el mapa campo => mensaje.
func Invalid(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, Body{
		Message: "Verifique os campos do formulário",
		Errors:  fields,
	})
}

// Decode lee JSON del body; responde 400 y devuelve false si falla.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Message(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}
