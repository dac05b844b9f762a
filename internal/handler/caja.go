package handler

import (
	"net/http"
	"strconv"

	"pizzapos/internal/apierror"
	"pizzapos/internal/dto"
	"pizzapos/internal/middleware"
	"pizzapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Abrir godoc
// @Summary Abre una nueva sesion de caja
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Monto de apertura"
// @Success 201 {object} dto.SesionCajaResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	empleadoID, err := uuid.Parse(claims.EmpleadoID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return
	}

	resp, err := h.svc.Abrir(c.Request.Context(), empleadoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cerrar godoc
// @Summary Cierra la sesion abierta y devuelve el arqueo
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Observaciones de cierre"
// @Success 200 {object} dto.CierreCajaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	empleadoID, err := uuid.Parse(claims.EmpleadoID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return
	}

	resp, err := h.svc.Cerrar(c.Request.Context(), empleadoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarMovimiento godoc
// @Summary Registra un ingreso o egreso manual en la sesion abierta
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimientoCajaRequest true "Movimiento"
// @Success 201 {object} dto.MovimientoCajaResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/caja/movimiento [post]
func (h *CajaHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ResumenTurno godoc
// @Summary Devuelve la sesion abierta con sus totales parciales
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ResumenTurnoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/abierta [get]
func (h *CajaHandler) ResumenTurno(c *gin.Context) {
	resp, err := h.svc.ResumenTurno(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TotalesHoy godoc
// @Summary Totales del dia (ingresos, egresos, neto) con cache corto
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TotalesHoyResponse
// @Router /v1/caja/totales-hoy [get]
func (h *CajaHandler) TotalesHoy(c *gin.Context) {
	resp, err := h.svc.TotalesHoy(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial godoc
// @Summary Lista sesiones cerradas, mas recientes primero
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param page query int false "Pagina (1..)"
// @Param limit query int false "Tamano de pagina (max 100)"
// @Success 200 {object} dto.HistorialCajaResponse
// @Router /v1/caja/historial [get]
func (h *CajaHandler) Historial(c *gin.Context) {
	page, limit := paginacion(c)
	resp, err := h.svc.Historial(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detalle godoc
// @Summary Detalle de una sesion con su libro de movimientos completo
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de sesion"
// @Success 200 {object} dto.DetalleSesionResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caja/{id} [get]
func (h *CajaHandler) Detalle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Detalle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// paginacion parses ?page and ?limit with the same defaults everywhere.
func paginacion(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
