package charts

import (
	"time"

	"github.com/jhoicas/sales-insights/internal/domain/costing"
	"github.com/jhoicas/sales-insights/internal/domain/entity"
)

// completionOf ubica una venta en el tiempo: completedAt (tienda/online) o updatedAt (anticipo).
func completionOf[T entity.SaleRecord](rec T) (time.Time, bool) {
	return rec.CompletionTime()
}

// ChannelAggregator agrupa, dentro de cada bucket, las ventas online por canal o las
// unidades vendidas por categoría. Los valores guardados son conteos crudos.
type ChannelAggregator struct {
	resolver costing.Resolver
}

// NewChannelAggregator construye el agregador.
func NewChannelAggregator(resolver costing.Resolver) ChannelAggregator {
	return ChannelAggregator{resolver: resolver}
}

// ByChannel cuenta ventas online que cuentan por estado, agrupadas por channel.name
// ("Unknown" si la venta no trae canal).
func (a ChannelAggregator) ByChannel(w Window, sales []entity.OnlineSale) *Table {
	t := Bucketize(w, sales, completionOf[entity.OnlineSale], func(s entity.OnlineSale) []Contribution {
		if !costing.Counts(s) {
			return nil
		}
		return []Contribution{{Series: s.ChannelName(), Value: 1}}
	})
	return t.SortSeriesByTotal()
}

// ByCategory suma unidades vendidas por categoría de producto en las ventas que cuentan.
func (a ChannelAggregator) ByCategory(w Window, records []entity.SaleRecord) *Table {
	t := Bucketize(w, records, completionOf[entity.SaleRecord], func(rec entity.SaleRecord) []Contribution {
		if !costing.Counts(rec) {
			return nil
		}
		items := costing.ProjectSaleItems(rec.Ledger().Items(), a.resolver.DefaultCostPerKg())
		out := make([]Contribution, 0, len(items))
		for _, it := range items {
			out = append(out, Contribution{Series: it.CategoryName, Value: it.Quantity()})
		}
		return out
	})
	return t.SortSeriesByTotal()
}
