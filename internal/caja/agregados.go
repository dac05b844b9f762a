package caja

import (
	"pizzapos/internal/model"

	"github.com/shopspring/decimal"
)

// ResumenMetodo is the per-payment-method aggregation over a movement set.
type ResumenMetodo struct {
	Metodo   string          `json:"metodo"`
	Ingresos decimal.Decimal `json:"ingresos"`
	Egresos  decimal.Decimal `json:"egresos"`
	Neto     decimal.Decimal `json:"neto"`
}

// Totales is the method-independent sum over a movement set.
type Totales struct {
	Ingresos decimal.Decimal `json:"ingresos"`
	Egresos  decimal.Decimal `json:"egresos"`
	Neto     decimal.Decimal `json:"neto"`
}

// AgregarPorMetodo groups movements by payment method, one row per distinct
// method, ordered by first appearance in the input. Methods without
// movements are omitted — no synthetic zero rows.
func AgregarPorMetodo(movimientos []model.MovimientoCaja) []ResumenMetodo {
	idx := make(map[string]int, 4)
	resumen := make([]ResumenMetodo, 0, 4)

	for i := range movimientos {
		m := &movimientos[i]
		nombre := m.MetodoNombre()
		j, ok := idx[nombre]
		if !ok {
			j = len(resumen)
			idx[nombre] = j
			resumen = append(resumen, ResumenMetodo{Metodo: nombre})
		}
		switch m.Tipo {
		case model.MovIngreso:
			resumen[j].Ingresos = resumen[j].Ingresos.Add(m.Monto)
		case model.MovEgreso:
			resumen[j].Egresos = resumen[j].Egresos.Add(m.Monto)
		}
	}

	for j := range resumen {
		resumen[j].Neto = resumen[j].Ingresos.Sub(resumen[j].Egresos)
	}
	return resumen
}

// AgregarTotales sums the whole movement set regardless of method.
func AgregarTotales(movimientos []model.MovimientoCaja) Totales {
	var t Totales
	for i := range movimientos {
		switch movimientos[i].Tipo {
		case model.MovIngreso:
			t.Ingresos = t.Ingresos.Add(movimientos[i].Monto)
		case model.MovEgreso:
			t.Egresos = t.Egresos.Add(movimientos[i].Monto)
		}
	}
	t.Neto = t.Ingresos.Sub(t.Egresos)
	return t
}
