package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compra is a supplier purchase paid from the register. Registering one
// appends the matching egreso movement to the open cash session.
type Compra struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpleadoID   uuid.UUID       `gorm:"type:uuid;not null"`
	MetodoPagoID uuid.UUID       `gorm:"type:uuid;not null"`
	Monto        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Proveedor    *string         `gorm:"type:varchar(120)"`
	Descripcion  *string         `gorm:"type:varchar(200)"`
	CreatedAt    time.Time

	Empleado   *Empleado   `gorm:"foreignKey:EmpleadoID"`
	MetodoPago *MetodoPago `gorm:"foreignKey:MetodoPagoID"`
}

func (Compra) TableName() string { return "compras" }
