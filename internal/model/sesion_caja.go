package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de sesion de caja.
const (
	SesionAbierta = "abierta"
	SesionCerrada = "cerrada"
)

// Tipos de movimiento. El monto es siempre positivo; el tipo lleva el signo.
const (
	MovIngreso = "ingreso"
	MovEgreso  = "egreso"
)

// SesionCaja represents one open-to-close cycle of the register.
// Estado: "abierta" | "cerrada". A closed session never reopens — reopening
// the register means creating a new session.
type SesionCaja struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Estado        string          `gorm:"type:varchar(20);not null;default:'abierta'"`
	MontoApertura decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AbiertaPorID  uuid.UUID       `gorm:"type:uuid;not null"`
	CerradaPorID  *uuid.UUID      `gorm:"type:uuid"`
	// TotalFinal is computed exactly once, at close:
	// monto_apertura + ingresos - egresos over ALL payment methods.
	TotalFinal    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Observaciones *string          `gorm:"type:varchar(200)"`
	OpenedAt      time.Time
	ClosedAt      *time.Time

	AbiertaPor  *Empleado        `gorm:"foreignKey:AbiertaPorID"`
	CerradaPor  *Empleado        `gorm:"foreignKey:CerradaPorID"`
	Movimientos []MovimientoCaja `gorm:"foreignKey:SesionCajaID"`
}

func (SesionCaja) TableName() string { return "sesiones_caja" }

// MovimientoCaja is an immutable event in the cash register ledger.
// Movements are NEVER modified or deleted — corrections append a
// compensating movement of the opposite tipo.
type MovimientoCaja struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SesionCajaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Tipo         string          `gorm:"type:varchar(10);not null"`
	MetodoPagoID uuid.UUID       `gorm:"type:uuid;not null"`
	Monto        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descripcion  *string         `gorm:"type:varchar(200)"`
	// Optional back-reference to the Venta or Compra this movement settles.
	VentaID   *uuid.UUID `gorm:"type:uuid"`
	CompraID  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time

	MetodoPago *MetodoPago `gorm:"foreignKey:MetodoPagoID"`
}

func (MovimientoCaja) TableName() string { return "movimientos_caja" }

// MetodoNombre resolves the payment-method name when the relation is loaded.
func (m *MovimientoCaja) MetodoNombre() string {
	if m.MetodoPago != nil {
		return m.MetodoPago.Nombre
	}
	return ""
}
