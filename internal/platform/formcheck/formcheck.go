// Package formcheck adapta los errores de ozzo-validation al body de 422:
// un mensaje por campo, el de la primera regla que falla.
package formcheck

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrInvalid = errors.New("validation failed")

// Errors mapea campo (tag json) => mensaje.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, formcheck.ErrInvalid).
func (e Errors) Is(target error) bool {
	return target == ErrInvalid
}

// Collect convierte el resultado de validation.ValidateStruct.
// nil => nil; validation.Errors => Errors; cualquier otro error (InternalError) pasa tal cual.
func Collect(err error) error {
	if err == nil {
		return nil
	}
	var ve validation.Errors
	if !errors.As(err, &ve) {
		return err
	}
	out := Errors{}
	for field, fe := range ve {
		if fe != nil {
			out[field] = fe.Error()
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FieldErrors extrae el mapa de errores de err (nil si no es de validación).
func FieldErrors(err error) map[string]string {
	var fe Errors
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}
