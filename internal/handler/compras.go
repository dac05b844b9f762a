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

type CompraHandler struct{ svc service.CompraService }

func NewCompraHandler(svc service.CompraService) *CompraHandler { return &CompraHandler{svc: svc} }

// Registrar godoc
// @Summary Registra una compra de insumos y su egreso en la caja abierta
// @Tags compras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarCompraRequest true "Datos de la compra"
// @Success 201 {object} dto.CompraResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/compras [post]
func (h *CompraHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarCompraRequest
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
// @Summary Lista compras, mas recientes primero
// @Tags compras
// @Produce json
// @Security BearerAuth
// @Param page query int false "Pagina (1..)"
// @Param limit query int false "Tamano de pagina (max 100)"
// @Success 200 {object} dto.ListarComprasResponse
// @Router /v1/compras [get]
func (h *CompraHandler) Listar(c *gin.Context) {
	page, limit := paginacion(c)
	resp, err := h.svc.Listar(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
