package handler

import (
	"net/http"

	"pizzapos/internal/dto"
	"pizzapos/internal/service"

	"github.com/gin-gonic/gin"
)

type MetodoPagoHandler struct{ svc service.MetodoPagoService }

func NewMetodoPagoHandler(svc service.MetodoPagoService) *MetodoPagoHandler {
	return &MetodoPagoHandler{svc: svc}
}

// Crear godoc
// @Summary Da de alta un metodo de pago
// @Tags metodos-pago
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearMetodoPagoRequest true "Nombre del metodo"
// @Success 201 {object} dto.MetodoPagoResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/metodos-pago [post]
func (h *MetodoPagoHandler) Crear(c *gin.Context) {
	var req dto.CrearMetodoPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista los metodos de pago activos
// @Tags metodos-pago
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MetodoPagoResponse
// @Router /v1/metodos-pago [get]
func (h *MetodoPagoHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
