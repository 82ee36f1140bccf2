package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrValidation   = errors.New("validación fallida")
	ErrStorage      = errors.New("error de almacenamiento")
	ErrNotUpdated   = errors.New("recurso no actualizado")
	ErrNotDeleted   = errors.New("recurso no eliminado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Ventas
	ErrVentaNoValida        = errors.New("venta no válida")
	ErrVentaNoEncontrada    = errors.New("venta no encontrada")
	ErrClienteNoEncontrado  = errors.New("cliente no encontrado")
	ErrProductoNoEncontrado = errors.New("producto no encontrado")
	ErrCantidadInvalida     = errors.New("cantidad inválida")
	ErrStockInsuficiente    = errors.New("stock insuficiente")
	ErrButacaNoDisponible   = errors.New("butaca no disponible")
)

// ValidationError identifica el campo que no cumple una restricción.
type ValidationError struct {
	Campo   string
	Mensaje string
}

func NewValidationError(campo, mensaje string) *ValidationError {
	return &ValidationError{Campo: campo, Mensaje: mensaje}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Campo, e.Mensaje)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// StockInsuficienteError se devuelve cuando una línea de complemento pide más unidades que el stock actual.
type StockInsuficienteError struct {
	Producto string
	Stock    int
	Cantidad int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("%s: no hay suficiente stock para el producto: %s, stock: %d cantidad: %d",
		ErrVentaNoValida, e.Producto, e.Stock, e.Cantidad)
}

func (e *StockInsuficienteError) Unwrap() []error {
	return []error{ErrVentaNoValida, ErrStockInsuficiente}
}

// StorageError envuelve fallos de E/S o serialización de ficheros.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrStorage, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrStorage}
	}
	return []error{ErrStorage, e.Err}
}

// NewStorageError construye un StorageError; devuelve nil si err es nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// VentaNoValida envuelve una causa concreta (cliente/producto/cantidad) bajo ErrVentaNoValida.
func VentaNoValida(causa error, format string, args ...any) error {
	return fmt.Errorf("%w: %w %s", ErrVentaNoValida, causa, fmt.Sprintf(format, args...))
}
