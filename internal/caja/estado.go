package caja

import (
	"time"

	"pizzapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Abrir validates the opening amount and builds a new session in state
// "abierta". It does not persist; the caller owns the write. MontoApertura,
// AbiertaPorID and OpenedAt are fixed here and never change afterwards.
func Abrir(montoApertura decimal.Decimal, empleadoID uuid.UUID, ahora time.Time) (*model.SesionCaja, error) {
	if montoApertura.IsNegative() {
		return nil, &ValidacionError{Campo: "monto_apertura", Motivo: "no puede ser negativo"}
	}
	return &model.SesionCaja{
		Estado:        model.SesionAbierta,
		MontoApertura: montoApertura,
		AbiertaPorID:  empleadoID,
		OpenedAt:      ahora,
	}, nil
}

// Cerrar transitions an open session to "cerrada", stamping ClosedAt,
// CerradaPorID and TotalFinal exactly once. The transition is irreversible;
// closing an already-closed session fails with an estado error and mutates
// nothing. Returns the closing summary used for the report.
func Cerrar(s *model.SesionCaja, empleadoID uuid.UUID, movimientos []model.MovimientoCaja, ahora time.Time) (*Cierre, error) {
	if s.Estado != model.SesionAbierta {
		return nil, &EstadoError{Op: "cerrar", Estado: s.Estado}
	}
	cierre := ResumenCierre(s.MontoApertura, movimientos)
	total := cierre.TotalFinal

	s.Estado = model.SesionCerrada
	s.CerradaPorID = &empleadoID
	s.ClosedAt = &ahora
	s.TotalFinal = &total
	return cierre, nil
}

// PuedeRegistrar rejects movement recording unless the session is open.
func PuedeRegistrar(s *model.SesionCaja) error {
	if s == nil || s.Estado != model.SesionAbierta {
		estado := model.SesionCerrada
		if s != nil {
			estado = s.Estado
		}
		return &EstadoError{Op: "registrar movimiento", Estado: estado}
	}
	return nil
}

// ValidarMonto enforces the strictly-positive amount rule for movements.
func ValidarMonto(monto decimal.Decimal) error {
	if !monto.IsPositive() {
		return &ValidacionError{Campo: "monto", Motivo: "debe ser mayor a cero"}
	}
	return nil
}
