package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrSinCuentasPorCobrar: ninguna de las tres estrategias de búsqueda
	// encontró cuentas por cobrar. Error fatal de configuración: sin cuentas
	// no hay nada correcto que reportar, la corrida aborta completa.
	ErrSinCuentasPorCobrar = errors.New("no se encontraron cuentas por cobrar, revisar plan de cuentas")

	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
)
