package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrUpstream     = errors.New("fuente de ventas no disponible")
	ErrNotFound     = errors.New("recurso no encontrado")
)
