package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	// ErrStorage envuelve cualquier fallo de lectura/escritura del almacén de registros.
	ErrStorage = errors.New("error de almacenamiento")
	// ErrPartialConsistency marca efectos secundarios de una venta que no se aplicaron
	// después de que la venta ya quedó registrada.
	ErrPartialConsistency = errors.New("consistencia parcial")
	ErrUnsupported        = errors.New("operación no soportada")

	// ErrDuplicate id ya registrado en la tabla.
	ErrDuplicate = errors.New("recurso duplicado")
)
