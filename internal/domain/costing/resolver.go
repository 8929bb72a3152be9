package costing

import "github.com/jhoicas/sales-insights/internal/domain/entity"

// Resolver aplica las reglas de estado de cada tipo de venta sobre el costo del ledger.
// Solo las ventas online tienen devolución.
type Resolver struct {
	defaultCostPerKg float64
}

// NewResolver construye el resolver con el costPerKg por defecto de la configuración.
func NewResolver(defaultCostPerKg float64) Resolver {
	return Resolver{defaultCostPerKg: defaultCostPerKg}
}

// DefaultCostPerKg valor usado cuando un lote no informa su costPerKg.
func (r Resolver) DefaultCostPerKg() float64 { return r.defaultCostPerKg }

// Counts indica si la venta cuenta para los reportes según su estado.
//   - tienda:  solo COMPLETED
//   - online:  COMPLETED o RETURNED
//   - anticipo: todo salvo CANCELED
func Counts(rec entity.SaleRecord) bool {
	status := rec.CurrentStatus()
	switch rec.Kind() {
	case entity.SaleKindStore:
		return status == entity.StatusCompleted
	case entity.SaleKindOnline:
		return status == entity.StatusCompleted || status == entity.StatusReturned
	case entity.SaleKindAdvance:
		return status != entity.StatusCanceled
	default:
		return false
	}
}

// Cost costo atribuible a la venta. Una venta online devuelta usa su returnCost y no el ledger.
func (r Resolver) Cost(rec entity.SaleRecord) float64 {
	if !Counts(rec) {
		return 0
	}
	if rec.CurrentStatus() == entity.StatusReturned {
		switch online := rec.(type) {
		case entity.OnlineSale:
			return online.ReturnCost.Float()
		case *entity.OnlineSale:
			return online.ReturnCost.Float()
		}
	}
	return SaleCost(rec.Ledger(), r.defaultCostPerKg)
}

// Revenue ingreso atribuible: totalAmount de las ventas que cuentan; una devolución no genera ingreso.
func (r Resolver) Revenue(rec entity.SaleRecord) float64 {
	if !Counts(rec) {
		return 0
	}
	if rec.Kind() == entity.SaleKindOnline && rec.CurrentStatus() == entity.StatusReturned {
		return 0
	}
	return rec.Ledger().TotalAmount.Float()
}
