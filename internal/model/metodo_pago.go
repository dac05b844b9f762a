package model

import (
	"time"

	"github.com/google/uuid"
)

// MetodoEfectivo is the only method that moves physical cash; the
// reconciliation of the drawer counts movements of this method exclusively.
const MetodoEfectivo = "efectivo"

// MetodoPago is the payment-method catalog (efectivo, debito, credito,
// transferencia, ...). Movements and sales reference it by FK.
type MetodoPago struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
}

func (MetodoPago) TableName() string { return "metodos_pago" }
