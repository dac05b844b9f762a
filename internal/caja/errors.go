// Package caja is the pure domain core of the cash register: session
// lifecycle, movement aggregation and drawer reconciliation. It performs no
// I/O — every function operates on already-fetched data, so the whole package
// is unit-testable without a database.
package caja

import (
	"errors"
	"fmt"
)

// Sentinel errors — match with errors.Is. The HTTP layer maps each category
// to a status code; none of them is fatal to the process.
var (
	// ErrValidacion: caller-supplied values violate a precondition.
	// The operation is rejected and no state changes.
	ErrValidacion = errors.New("datos invalidos")

	// ErrEstadoInvalido: the operation is not allowed in the session's
	// current lifecycle state (abrir con caja ya abierta, movimiento con
	// caja cerrada, cerrar una caja ya cerrada).
	ErrEstadoInvalido = errors.New("estado de caja invalido")

	// ErrReferencia: a referenced catalog entity does not exist
	// (metodo de pago desconocido, venta/compra inexistente).
	ErrReferencia = errors.New("referencia inexistente")
)

// ValidacionError carries the offending field.
type ValidacionError struct {
	Campo  string
	Motivo string
}

func (e *ValidacionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Campo, e.Motivo)
}

func (e *ValidacionError) Unwrap() error { return ErrValidacion }

// EstadoError carries the attempted operation and the state that rejected it.
type EstadoError struct {
	Op     string
	Estado string
}

func (e *EstadoError) Error() string {
	return fmt.Sprintf("no se puede %s: la caja esta %s", e.Op, e.Estado)
}

func (e *EstadoError) Unwrap() error { return ErrEstadoInvalido }

// ReferenciaError names the missing catalog entry.
type ReferenciaError struct {
	Entidad string
	Valor   string
}

func (e *ReferenciaError) Error() string {
	return fmt.Sprintf("%s %q no existe", e.Entidad, e.Valor)
}

func (e *ReferenciaError) Unwrap() error { return ErrReferencia }
