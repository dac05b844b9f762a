package dto

import "github.com/shopspring/decimal"

type RegistrarVentaRequest struct {
	MetodoPago  string          `json:"metodo_pago" validate:"required,min=1,max=50"`
	Monto       decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	Descripcion *string         `json:"descripcion" validate:"omitempty,max=200"`
}

type VentaResponse struct {
	ID          string          `json:"id"`
	Empleado    string          `json:"empleado"`
	MetodoPago  string          `json:"metodo_pago"`
	Monto       decimal.Decimal `json:"monto"`
	Descripcion *string         `json:"descripcion"`
	Anulada     bool            `json:"anulada"`
	CreatedAt   string          `json:"created_at"`
}

type ListarVentasResponse struct {
	Items []VentaResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
