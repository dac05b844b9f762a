package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is a sale settled through the register. Registering a sale also
// appends the matching ingreso movement to the open cash session.
// Annulling a sale never deletes it: Anulada is flipped and a compensating
// egreso movement is appended to the ledger.
type Venta struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpleadoID   uuid.UUID       `gorm:"type:uuid;not null"`
	MetodoPagoID uuid.UUID       `gorm:"type:uuid;not null"`
	Monto        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descripcion  *string         `gorm:"type:varchar(200)"`
	Anulada      bool            `gorm:"not null;default:false"`
	CreatedAt    time.Time

	Empleado   *Empleado   `gorm:"foreignKey:EmpleadoID"`
	MetodoPago *MetodoPago `gorm:"foreignKey:MetodoPagoID"`
}

func (Venta) TableName() string { return "ventas" }
