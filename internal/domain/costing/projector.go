// Package costing reconstruye el costo de una venta a partir de los lotes de compra
// registrados en su ledger de inventario.
package costing

import "github.com/jhoicas/sales-insights/internal/domain/entity"

// CostDetail aporte de un lote de compra a una variante dentro de una venta.
type CostDetail struct {
	PurchaseItemID entity.Ref `json:"purchaseItemId"`
	Quantity       float64    `json:"quantity"`
	UnitCost       float64    `json:"unitCost"`
	CostPerKg      float64    `json:"costPerKg"`
}

// SaleItem agregado por variante de una venta. Nombre, peso, precio y categoría se toman
// de la primera línea del ledger; Details conserva un registro por lote.
type SaleItem struct {
	VariantID    entity.Ref   `json:"variantId"`
	ProductName  string       `json:"productName"`
	VariantName  string       `json:"variantName"`
	CategoryName string       `json:"categoryName"`
	Price        float64      `json:"price"`
	Weight       float64      `json:"weight"`
	Details      []CostDetail `json:"details"`
}

// ProjectSaleItems agrupa el ledger por variantId en orden de primera aparición.
// Nunca fusiona lotes distintos: cada línea agrega su propio CostDetail.
// defaultCostPerKg se usa cuando la compra del lote no informa costPerKg.
func ProjectSaleItems(items []entity.StockMovementItem, defaultCostPerKg float64) []SaleItem {
	out := make([]SaleItem, 0, len(items))
	index := make(map[entity.Ref]int, len(items))

	for _, it := range items {
		pos, seen := index[it.VariantID]
		if !seen {
			pos = len(out)
			index[it.VariantID] = pos
			out = append(out, newSaleItem(it))
		}
		out[pos].Details = append(out[pos].Details, newCostDetail(it, defaultCostPerKg))
	}
	return out
}

func newSaleItem(it entity.StockMovementItem) SaleItem {
	item := SaleItem{
		VariantID:    it.VariantID,
		VariantName:  it.Variant.DisplayName(),
		CategoryName: entity.UnknownGroup,
		Price:        nonNegative(it.Price.Float()),
	}
	if it.Variant != nil && it.Variant.Product != nil {
		p := it.Variant.Product
		item.ProductName = p.Name
		item.Weight = nonNegative(p.Weight.Float())
		if p.Category != nil && p.Category.Name != "" {
			item.CategoryName = p.Category.Name
		}
	}
	return item
}

func newCostDetail(it entity.StockMovementItem, defaultCostPerKg float64) CostDetail {
	d := CostDetail{
		PurchaseItemID: it.PurchaseItemID,
		Quantity:       nonNegative(it.Quantity.Float()),
		CostPerKg:      nonNegative(defaultCostPerKg),
	}
	if pi := it.PurchaseItem; pi != nil {
		d.UnitCost = nonNegative(pi.UnitCost.Float())
		if pi.Purchase != nil && pi.Purchase.CostPerKg.Valid() {
			d.CostPerKg = nonNegative(pi.Purchase.CostPerKg.Float())
		}
	}
	return d
}

// nonNegative extiende la coerción a cero a los valores negativos: un costo nunca resta.
func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
