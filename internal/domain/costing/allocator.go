package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sales-insights/internal/domain/entity"
)

// gramsPerKg convierte el peso del producto (gramos) a kilogramos para el recargo.
const gramsPerKg = 1000

// DetailCost costo de un lote: (unitCost + weight * (costPerKg / 1000)) * quantity.
// El orden de las operaciones se conserva tal cual.
func DetailCost(weight float64, d CostDetail) float64 {
	return (d.UnitCost + weight*(d.CostPerKg/gramsPerKg)) * d.Quantity
}

// Cost costo total de la variante sumando todos sus lotes.
func (i SaleItem) Cost() float64 {
	var total float64
	for _, d := range i.Details {
		total += DetailCost(i.Weight, d)
	}
	return total
}

// Quantity unidades vendidas de la variante (suma de los lotes).
func (i SaleItem) Quantity() float64 {
	var qty float64
	for _, d := range i.Details {
		qty += d.Quantity
	}
	return qty
}

// AverageUnitCost costo unitario promedio ponderado de la variante, incluido el recargo por peso.
func (i SaleItem) AverageUnitCost() decimal.Decimal {
	qty, avg := decimal.Zero, decimal.Zero
	for _, d := range i.Details {
		lotQty := decimal.NewFromFloat(d.Quantity)
		lotUnit := decimal.NewFromFloat(d.UnitCost + i.Weight*(d.CostPerKg/gramsPerKg))
		avg = weightedAverage(qty, avg, lotQty, lotUnit)
		qty = qty.Add(lotQty)
	}
	return avg
}

// ItemsCost suma el costo de una lista de SaleItem ya proyectada.
func ItemsCost(items []SaleItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Cost()
	}
	return total
}

// SaleCost proyecta el ledger de la venta y devuelve su costo total (siempre >= 0).
func SaleCost(sale entity.Sale, defaultCostPerKg float64) float64 {
	return ItemsCost(ProjectSaleItems(sale.Items(), defaultCostPerKg))
}

// weightedAverage incorpora un lote al promedio acumulado:
// ((qtyAcum * costoAcum) + (qtyLote * costoLote)) / (qtyAcum + qtyLote)
func weightedAverage(qtyAcc, costAcc, qtyLot, costLot decimal.Decimal) decimal.Decimal {
	total := qtyAcc.Add(qtyLot)
	if !total.IsPositive() {
		return decimal.Zero
	}
	return qtyAcc.Mul(costAcc).Add(qtyLot.Mul(costLot)).Div(total)
}
