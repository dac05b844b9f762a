package caja

import (
	"pizzapos/internal/model"

	"github.com/shopspring/decimal"
)

// Cierre is the closing summary of a session.
//
// TotalFinal and EfectivoDisponible answer different questions and are both
// kept: TotalFinal is the net cash-equivalent position over ALL payment
// methods; EfectivoDisponible is the theoretical physical cash in the drawer,
// derived from efectivo movements only. Conflating them is a correctness bug.
type Cierre struct {
	MontoApertura      decimal.Decimal `json:"monto_apertura"`
	Ingresos           decimal.Decimal `json:"ingresos"`
	Egresos            decimal.Decimal `json:"egresos"`
	TotalFinal         decimal.Decimal `json:"total_final"`
	EfectivoDisponible decimal.Decimal `json:"efectivo_disponible"`
	Metodos            []ResumenMetodo `json:"metodos"`
}

// EfectivoDisponible computes the theoretical physical cash on hand:
// monto_apertura + ingresos efectivo - egresos efectivo. Non-cash methods
// (debito, credito, transferencia) are tracked for reporting but never move
// physical cash.
func EfectivoDisponible(montoApertura decimal.Decimal, movimientos []model.MovimientoCaja) decimal.Decimal {
	total := montoApertura
	for i := range movimientos {
		m := &movimientos[i]
		if m.MetodoNombre() != model.MetodoEfectivo {
			continue
		}
		switch m.Tipo {
		case model.MovIngreso:
			total = total.Add(m.Monto)
		case model.MovEgreso:
			total = total.Sub(m.Monto)
		}
	}
	return total
}

// ResumenCierre builds the full closing summary for a session opened with
// montoApertura, over its complete movement list.
func ResumenCierre(montoApertura decimal.Decimal, movimientos []model.MovimientoCaja) *Cierre {
	totales := AgregarTotales(movimientos)
	return &Cierre{
		MontoApertura:      montoApertura,
		Ingresos:           totales.Ingresos,
		Egresos:            totales.Egresos,
		TotalFinal:         montoApertura.Add(totales.Ingresos).Sub(totales.Egresos),
		EfectivoDisponible: EfectivoDisponible(montoApertura, movimientos),
		Metodos:            AgregarPorMetodo(movimientos),
	}
}
