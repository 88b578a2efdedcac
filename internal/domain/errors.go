package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidPeriod     = errors.New("período inválido")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrStoreUnavailable  = errors.New("almacén de datos no disponible")
	ErrDeliveryFailed    = errors.New("envío del reporte fallido")
	ErrPersistenceFailed = errors.New("registro del reporte fallido")
)
