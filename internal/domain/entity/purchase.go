package entity

// Purchase compra a proveedor. CostPerKg es el recargo de manejo/envío por kilogramo
// que se reparte sobre el peso de los productos del lote.
type Purchase struct {
	ID        Ref    `json:"id"`
	CostPerKg Number `json:"costPerKg"`
}

// PurchaseItem lote de compra: costo unitario propio y la compra de la que proviene.
type PurchaseItem struct {
	ID       Ref       `json:"id"`
	UnitCost Number    `json:"unitCost"`
	Purchase *Purchase `json:"purchase,omitempty"`
}
