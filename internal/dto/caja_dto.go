package dto

import (
	"pizzapos/internal/caja"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoApertura decimal.Decimal `json:"monto_apertura" validate:"min=0"`
}

type CerrarCajaRequest struct {
	Observaciones *string `json:"observaciones" validate:"omitempty,max=200"`
}

type MovimientoCajaRequest struct {
	Tipo        string          `json:"tipo"        validate:"required,oneof=ingreso egreso"`
	MetodoPago  string          `json:"metodo_pago" validate:"required,min=1,max=50"`
	Monto       decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	Descripcion *string         `json:"descripcion" validate:"omitempty,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoCajaResponse struct {
	ID           string          `json:"id"`
	SesionCajaID string          `json:"sesion_caja_id"`
	Tipo         string          `json:"tipo"`
	MetodoPago   string          `json:"metodo_pago"`
	Monto        decimal.Decimal `json:"monto"`
	Descripcion  *string         `json:"descripcion"`
	VentaID      *string         `json:"venta_id,omitempty"`
	CompraID     *string         `json:"compra_id,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

type SesionCajaResponse struct {
	ID            string           `json:"id"`
	Estado        string           `json:"estado"`
	MontoApertura decimal.Decimal  `json:"monto_apertura"`
	AbiertaPor    string           `json:"abierta_por"`
	CerradaPor    *string          `json:"cerrada_por,omitempty"`
	TotalFinal    *decimal.Decimal `json:"total_final,omitempty"`
	// TotalFinalFmt follows the sign-display convention: "+$X.XX" / "-$X.XX".
	TotalFinalFmt *string `json:"total_final_fmt,omitempty"`
	Observaciones *string `json:"observaciones,omitempty"`
	OpenedAt      string  `json:"opened_at"`
	ClosedAt      *string `json:"closed_at,omitempty"`
}

// ResumenTurnoResponse is the shift summary of the currently open session.
type ResumenTurnoResponse struct {
	Sesion             SesionCajaResponse       `json:"sesion"`
	Totales            caja.Totales             `json:"totales"`
	Metodos            []caja.ResumenMetodo     `json:"metodos"`
	EfectivoDisponible decimal.Decimal          `json:"efectivo_disponible"`
	EfectivoFmt        string                   `json:"efectivo_disponible_fmt"`
	Movimientos        []MovimientoCajaResponse `json:"movimientos"`
}

// CierreCajaResponse is returned by POST /v1/caja/cerrar. TotalFinal covers
// all payment methods; EfectivoDisponible counts efectivo only — both are
// exposed, under distinct labels.
type CierreCajaResponse struct {
	SesionCajaID       string               `json:"sesion_caja_id"`
	MontoApertura      decimal.Decimal      `json:"monto_apertura"`
	Ingresos           decimal.Decimal      `json:"ingresos"`
	Egresos            decimal.Decimal      `json:"egresos"`
	TotalFinal         decimal.Decimal      `json:"total_final"`
	TotalFinalFmt      string               `json:"total_final_fmt"`
	EfectivoDisponible decimal.Decimal      `json:"efectivo_disponible"`
	EfectivoFmt        string               `json:"efectivo_disponible_fmt"`
	Metodos            []caja.ResumenMetodo `json:"metodos"`
	ClosedAt           string               `json:"closed_at"`
}

type HistorialCajaResponse struct {
	Items []SesionCajaResponse `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// DetalleSesionResponse is the drill-down of one session (open or closed).
type DetalleSesionResponse struct {
	Sesion             SesionCajaResponse       `json:"sesion"`
	Totales            caja.Totales             `json:"totales"`
	Metodos            []caja.ResumenMetodo     `json:"metodos"`
	EfectivoDisponible decimal.Decimal          `json:"efectivo_disponible"`
	Movimientos        []MovimientoCajaResponse `json:"movimientos"`
}

type TotalesHoyResponse struct {
	Ingresos decimal.Decimal `json:"ingresos"`
	Egresos  decimal.Decimal `json:"egresos"`
}
