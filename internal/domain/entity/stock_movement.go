package entity

// StockMovement cabecera del ledger de inventario asociado a una venta.
// Sus líneas son inmutables una vez escritas (append-only).
type StockMovement struct {
	ID    Ref                 `json:"id"`
	Items []StockMovementItem `json:"items"`
}

// StockMovementItem línea del ledger: qué variante salió, de qué lote y a qué precio.
// Una misma variante puede aparecer varias veces en una venta (varios lotes) y un mismo
// lote puede aparecer en varias ventas.
type StockMovementItem struct {
	ID             Ref           `json:"id"`
	VariantID      Ref           `json:"variantId"`
	PurchaseItemID Ref           `json:"purchaseItemId"`
	Quantity       Number        `json:"quantity"`
	Price          Number        `json:"price"`
	Variant        *Variant      `json:"variant,omitempty"`
	PurchaseItem   *PurchaseItem `json:"purchaseItem,omitempty"`
}

// LedgerItems devuelve las líneas del ledger tolerando un movimiento ausente.
func (m *StockMovement) LedgerItems() []StockMovementItem {
	if m == nil {
		return nil
	}
	return m.Items
}
