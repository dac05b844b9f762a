package dto

type CrearMetodoPagoRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=50"`
}

type MetodoPagoResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}
