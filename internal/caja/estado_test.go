package caja

import (
	"errors"
	"testing"
	"time"

	"pizzapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbrir(t *testing.T) {
	empleado := uuid.New()
	ahora := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	s, err := Abrir(decimal.NewFromInt(1000), empleado, ahora)
	require.NoError(t, err)
	assert.Equal(t, model.SesionAbierta, s.Estado)
	assert.True(t, s.MontoApertura.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, empleado, s.AbiertaPorID)
	assert.Equal(t, ahora, s.OpenedAt)
	assert.Nil(t, s.ClosedAt)
	assert.Nil(t, s.TotalFinal)
}

func TestAbrir_MontoCeroEsValido(t *testing.T) {
	s, err := Abrir(decimal.Zero, uuid.New(), time.Now())
	require.NoError(t, err)
	assert.True(t, s.MontoApertura.IsZero())
}

func TestAbrir_MontoNegativo(t *testing.T) {
	_, err := Abrir(decimal.NewFromInt(-1), uuid.New(), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidacion))

	var ve *ValidacionError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "monto_apertura", ve.Campo)
}

func TestCerrar(t *testing.T) {
	empleadoAbre := uuid.New()
	empleadoCierra := uuid.New()
	apertura := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	cierreHora := apertura.Add(8 * time.Hour)

	s, err := Abrir(decimal.NewFromInt(1000), empleadoAbre, apertura)
	require.NoError(t, err)

	movs := []model.MovimientoCaja{
		movimiento(model.MovIngreso, "efectivo", 200),
		movimiento(model.MovEgreso, "efectivo", 50),
	}

	cierre, err := Cerrar(s, empleadoCierra, movs, cierreHora)
	require.NoError(t, err)

	assert.Equal(t, model.SesionCerrada, s.Estado)
	require.NotNil(t, s.CerradaPorID)
	assert.Equal(t, empleadoCierra, *s.CerradaPorID)
	require.NotNil(t, s.ClosedAt)
	assert.Equal(t, cierreHora, *s.ClosedAt)
	require.NotNil(t, s.TotalFinal)
	assert.True(t, s.TotalFinal.Equal(decimal.NewFromInt(1150)))
	assert.True(t, cierre.TotalFinal.Equal(decimal.NewFromInt(1150)))
}

func TestCerrar_SinMovimientos(t *testing.T) {
	s, err := Abrir(decimal.NewFromInt(500), uuid.New(), time.Now())
	require.NoError(t, err)

	cierre, err := Cerrar(s, uuid.New(), nil, time.Now())
	require.NoError(t, err)

	// Nothing moved: total final and cash on hand both equal the float.
	assert.True(t, cierre.TotalFinal.Equal(decimal.NewFromInt(500)))
	assert.True(t, cierre.EfectivoDisponible.Equal(decimal.NewFromInt(500)))
	assert.True(t, cierre.Ingresos.IsZero())
	assert.True(t, cierre.Egresos.IsZero())
	assert.Empty(t, cierre.Metodos)
}

func TestCerrar_SesionYaCerrada(t *testing.T) {
	s, err := Abrir(decimal.NewFromInt(100), uuid.New(), time.Now())
	require.NoError(t, err)

	primerCierre := uuid.New()
	_, err = Cerrar(s, primerCierre, nil, time.Now())
	require.NoError(t, err)

	totalAntes := *s.TotalFinal
	closedAntes := *s.ClosedAt

	_, err = Cerrar(s, uuid.New(), nil, time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEstadoInvalido))

	// A failed close mutates nothing.
	assert.True(t, s.TotalFinal.Equal(totalAntes))
	assert.Equal(t, closedAntes, *s.ClosedAt)
	assert.Equal(t, primerCierre, *s.CerradaPorID)
}

func TestPuedeRegistrar(t *testing.T) {
	s, err := Abrir(decimal.NewFromInt(100), uuid.New(), time.Now())
	require.NoError(t, err)
	assert.NoError(t, PuedeRegistrar(s))

	_, err = Cerrar(s, uuid.New(), nil, time.Now())
	require.NoError(t, err)

	err = PuedeRegistrar(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEstadoInvalido))

	err = PuedeRegistrar(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEstadoInvalido))
}

func TestValidarMonto(t *testing.T) {
	assert.NoError(t, ValidarMonto(decimal.NewFromFloat(0.01)))

	err := ValidarMonto(decimal.Zero)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidacion))

	err = ValidarMonto(decimal.NewFromInt(-50))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidacion))
}

// movimiento builds a ledger entry with the method relation loaded, the way
// the repository returns them.
func movimiento(tipo, metodo string, monto int64) model.MovimientoCaja {
	return model.MovimientoCaja{
		ID:         uuid.New(),
		Tipo:       tipo,
		Monto:      decimal.NewFromInt(monto),
		MetodoPago: &model.MetodoPago{Nombre: metodo},
	}
}
