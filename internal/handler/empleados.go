package handler

import (
	"net/http"

	"pizzapos/internal/apierror"
	"pizzapos/internal/dto"
	"pizzapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EmpleadoHandler struct{ svc service.AuthService }

func NewEmpleadoHandler(svc service.AuthService) *EmpleadoHandler {
	return &EmpleadoHandler{svc: svc}
}

// Crear godoc
// @Summary Da de alta un empleado
// @Tags empleados
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearEmpleadoRequest true "Datos del empleado"
// @Success 201 {object} dto.EmpleadoResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/empleados [post]
func (h *EmpleadoHandler) Crear(c *gin.Context) {
	var req dto.CrearEmpleadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearEmpleado(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista empleados (activos por defecto)
// @Tags empleados
// @Produce json
// @Security BearerAuth
// @Param incluir_inactivos query bool false "Incluye empleados dados de baja"
// @Success 200 {array} dto.EmpleadoResponse
// @Router /v1/empleados [get]
func (h *EmpleadoHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.ListarEmpleados(c.Request.Context(), incluirInactivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Actualiza nombre, email, rol o password de un empleado
// @Tags empleados
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de empleado"
// @Param body body dto.ActualizarEmpleadoRequest true "Campos a actualizar"
// @Success 200 {object} dto.EmpleadoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/empleados/{id} [put]
func (h *EmpleadoHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarEmpleadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEmpleado(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desactivar godoc
// @Summary Baja logica de un empleado
// @Tags empleados
// @Security BearerAuth
// @Param id path string true "ID de empleado"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/empleados/{id} [delete]
func (h *EmpleadoHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.DesactivarEmpleado(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reactivar godoc
// @Summary Reactiva un empleado dado de baja
// @Tags empleados
// @Security BearerAuth
// @Param id path string true "ID de empleado"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/empleados/{id}/reactivar [post]
func (h *EmpleadoHandler) Reactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.ReactivarEmpleado(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
