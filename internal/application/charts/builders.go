package charts

import (
	"github.com/jhoicas/sales-insights/internal/domain/costing"
	"github.com/jhoicas/sales-insights/internal/domain/entity"
)

// Series del gráfico de ingresos.
const (
	SeriesIncome = "income"
	SeriesCost   = "cost"
	SeriesProfit = "profit"
)

// SalesActivity cuenta por bucket las ventas que cuentan de cada tipo (online, advance, store).
func SalesActivity(w Window, records []entity.SaleRecord) *Table {
	t := Bucketize(w, records, completionOf[entity.SaleRecord], func(rec entity.SaleRecord) []Contribution {
		if !costing.Counts(rec) {
			return nil
		}
		return []Contribution{{Series: string(rec.Kind()), Value: 1}}
	})
	kinds := make([]string, 0, len(entity.SaleKinds))
	for _, k := range entity.SaleKinds {
		kinds = append(kinds, string(k))
	}
	return t.EnsureSeries(kinds...)
}

// IncomeOverview suma por bucket ingreso, costo resuelto y ganancia de las ventas que cuentan.
func IncomeOverview(w Window, records []entity.SaleRecord, resolver costing.Resolver) *Table {
	t := Bucketize(w, records, completionOf[entity.SaleRecord], func(rec entity.SaleRecord) []Contribution {
		if !costing.Counts(rec) {
			return nil
		}
		income := resolver.Revenue(rec)
		cost := resolver.Cost(rec)
		return []Contribution{
			{Series: SeriesIncome, Value: income},
			{Series: SeriesCost, Value: cost},
			{Series: SeriesProfit, Value: income - cost},
		}
	})
	return t.EnsureSeries(SeriesIncome, SeriesCost, SeriesProfit)
}
