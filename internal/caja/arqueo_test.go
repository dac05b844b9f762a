package caja

import (
	"encoding/json"
	"testing"

	"pizzapos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEfectivoDisponible(t *testing.T) {
	// Apertura 1000, venta efectivo +200, compra efectivo -50 → 1150.
	movs := []model.MovimientoCaja{
		movimiento(model.MovIngreso, "efectivo", 200),
		movimiento(model.MovEgreso, "efectivo", 50),
	}

	efectivo := EfectivoDisponible(decimal.NewFromInt(1000), movs)
	assert.True(t, efectivo.Equal(decimal.NewFromInt(1150)))
}

func TestEfectivoDisponible_IgnoraMetodosNoEfectivo(t *testing.T) {
	// A card sale raises the final total but never touches the drawer.
	movs := []model.MovimientoCaja{
		movimiento(model.MovIngreso, "credito", 500),
	}

	efectivo := EfectivoDisponible(decimal.NewFromInt(1000), movs)
	assert.True(t, efectivo.Equal(decimal.NewFromInt(1000)))

	cierre := ResumenCierre(decimal.NewFromInt(1000), movs)
	assert.True(t, cierre.TotalFinal.Equal(decimal.NewFromInt(1500)))
	assert.True(t, cierre.EfectivoDisponible.Equal(decimal.NewFromInt(1000)))
}

func TestResumenCierre(t *testing.T) {
	movs := []model.MovimientoCaja{
		movimiento(model.MovIngreso, "efectivo", 200),
		movimiento(model.MovIngreso, "debito", 300),
		movimiento(model.MovEgreso, "efectivo", 50),
	}

	cierre := ResumenCierre(decimal.NewFromInt(1000), movs)

	assert.True(t, cierre.MontoApertura.Equal(decimal.NewFromInt(1000)))
	assert.True(t, cierre.Ingresos.Equal(decimal.NewFromInt(500)))
	assert.True(t, cierre.Egresos.Equal(decimal.NewFromInt(50)))
	assert.True(t, cierre.TotalFinal.Equal(decimal.NewFromInt(1450)))
	assert.True(t, cierre.EfectivoDisponible.Equal(decimal.NewFromInt(1150)))
	require.Len(t, cierre.Metodos, 2)
}

func TestResumenCierre_EgresosSuperanIngresos(t *testing.T) {
	// A session can legitimately close negative (big supplier purchase).
	movs := []model.MovimientoCaja{
		movimiento(model.MovEgreso, "efectivo", 300),
	}

	cierre := ResumenCierre(decimal.NewFromInt(100), movs)
	assert.True(t, cierre.TotalFinal.Equal(decimal.NewFromInt(-200)))
	assert.True(t, cierre.EfectivoDisponible.Equal(decimal.NewFromInt(-200)))
}

func TestCierre_JSONConservaDecimales(t *testing.T) {
	// Decimals marshal as quoted strings, so cents survive the round trip.
	movs := []model.MovimientoCaja{
		{Tipo: model.MovIngreso, Monto: decimal.RequireFromString("0.10"), MetodoPago: &model.MetodoPago{Nombre: "efectivo"}},
		{Tipo: model.MovIngreso, Monto: decimal.RequireFromString("0.20"), MetodoPago: &model.MetodoPago{Nombre: "efectivo"}},
	}
	cierre := ResumenCierre(decimal.RequireFromString("0.70"), movs)
	require.True(t, cierre.TotalFinal.Equal(decimal.RequireFromString("1.00")))

	data, err := json.Marshal(cierre)
	require.NoError(t, err)

	var back Cierre
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.TotalFinal.Equal(cierre.TotalFinal))
	assert.True(t, back.EfectivoDisponible.Equal(cierre.EfectivoDisponible))
}
