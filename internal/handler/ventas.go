package handler

import (
	"net/http"

	"pizzapos/internal/apierror"
	"pizzapos/internal/dto"
	"pizzapos/internal/middleware"
	"pizzapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentaHandler struct{ svc service.VentaService }

func NewVentaHandler(svc service.VentaService) *VentaHandler { return &VentaHandler{svc: svc} }

// Registrar godoc
// @Summary Registra una venta y su ingreso en la caja abierta
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarVentaRequest true "Datos de la venta"
// @Success 201 {object} dto.VentaResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/ventas [post]
func (h *VentaHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	empleadoID, err := uuid.Parse(claims.EmpleadoID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), empleadoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista ventas, mas recientes primero
// @Tags ventas
// @Produce json
// @Security BearerAuth
// @Param page query int false "Pagina (1..)"
// @Param limit query int false "Tamano de pagina (max 100)"
// @Success 200 {object} dto.ListarVentasResponse
// @Router /v1/ventas [get]
func (h *VentaHandler) Listar(c *gin.Context) {
	page, limit := paginacion(c)
	resp, err := h.svc.Listar(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Anular godoc
// @Summary Anula una venta con un egreso compensatorio en la caja abierta
// @Tags ventas
// @Security BearerAuth
// @Param id path string true "ID de venta"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/ventas/{id}/anular [post]
func (h *VentaHandler) Anular(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	empleadoID, err := uuid.Parse(claims.EmpleadoID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return
	}
	if err := h.svc.Anular(c.Request.Context(), id, empleadoID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
