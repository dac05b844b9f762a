package handler

import (
	"errors"
	"net/http"
	"reflect"

	"pizzapos/internal/apierror"
	"pizzapos/internal/caja"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps domain errors to HTTP status codes:
//
//	caja.ErrValidacion     → 422 (bad amounts, bad state inputs)
//	caja.ErrEstadoInvalido → 409 (operation conflicts with the session state)
//	caja.ErrReferencia     → 404 (unknown payment method, sale, session)
//	gorm.ErrRecordNotFound → 404
//	anything else          → 500, with the detail hidden from the client
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, caja.ErrValidacion):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, caja.ErrEstadoInvalido):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, caja.ErrReferencia):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("No encontrado"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
