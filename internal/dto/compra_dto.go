package dto

import "github.com/shopspring/decimal"

type RegistrarCompraRequest struct {
	MetodoPago  string          `json:"metodo_pago" validate:"required,min=1,max=50"`
	Monto       decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	Proveedor   *string         `json:"proveedor"   validate:"omitempty,max=120"`
	Descripcion *string         `json:"descripcion" validate:"omitempty,max=200"`
}

type CompraResponse struct {
	ID          string          `json:"id"`
	Empleado    string          `json:"empleado"`
	MetodoPago  string          `json:"metodo_pago"`
	Monto       decimal.Decimal `json:"monto"`
	Proveedor   *string         `json:"proveedor"`
	Descripcion *string         `json:"descripcion"`
	CreatedAt   string          `json:"created_at"`
}

type ListarComprasResponse struct {
	Items []CompraResponse `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
