package upstream

import (
	"errors"
	"fmt"
)

// ErrUnavailable es el sentinel para cualquier falla del backend externo
// (sensores, diagnóstico, predicción). No hay reintentos.
var ErrUnavailable = errors.New("upstream unavailable")

// UnavailableError envuelve la causa real y el servicio que falló.
type UnavailableError struct {
	Service string
	Err     error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Service, ErrUnavailable)
	}
	return fmt.Sprintf("%s: %s: %v", e.Service, ErrUnavailable, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

// Unavailable construye el error para service.
func Unavailable(service string, err error) error {
	return &UnavailableError{Service: service, Err: err}
}
