package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// ChartQuery parámetros comunes de GET /api/charts/*.
type ChartQuery struct {
	Mode string `query:"mode" validate:"omitempty,oneof=week month"` // week (default) | month
	View string `query:"view" validate:"omitempty,oneof=count percent"` // count (default) | percent
}

// ── Filas del gráfico ────────────────────────────────────────────────────────

// ChartRow fila lista para el componente de gráficos: la etiqueta del bucket bajo
// LabelKey ("day" o "month") más un campo numérico por serie.
type ChartRow struct {
	LabelKey string
	Label    string
	Values   map[string]float64
}

// MarshalJSON aplana la fila: {"day": "samedi", "online": 3, "store": 1}.
func (r ChartRow) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Values)+1)
	for k, v := range r.Values {
		flat[k] = v
	}
	flat[r.LabelKey] = r.Label
	return json.Marshal(flat)
}

// ChartDTO respuesta de los gráficos por bucket.
type ChartDTO struct {
	Mode     string     `json:"mode"`
	LabelKey string     `json:"label_key"`
	From     string     `json:"from"` // YYYY-MM-DD inclusive
	To       string     `json:"to"`   // YYYY-MM-DD inclusive
	Series   []string   `json:"series"`
	Rows     []ChartRow `json:"rows"`
}

// ShareDTO participación de un grupo (canal o categoría) en toda la ventana.
type ShareDTO struct {
	Name    string          `json:"name"`
	Count   float64         `json:"count"`
	Percent decimal.Decimal `json:"percent"` // redondeado a 1 decimal
	Label   string          `json:"label"`   // ej: "12,5 %"
}

// GroupChartDTO respuesta de GET /api/charts/channels y /api/charts/categories.
type GroupChartDTO struct {
	ChartDTO
	View   string     `json:"view"`
	Total  float64    `json:"total"`
	Shares []ShareDTO `json:"shares"`
}

// SummaryDTO respuesta de GET /api/charts/summary: totales de la ventana activa.
type SummaryDTO struct {
	Mode         string          `json:"mode"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	StoreSales   int             `json:"store_sales"`
	OnlineSales  int             `json:"online_sales"`
	AdvanceSales int             `json:"advance_sales"`
	Income       decimal.Decimal `json:"income"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`     // Income - Cost
	MarginPct    decimal.Decimal `json:"margin_pct"` // Profit / Income * 100
}

// ── Desglose de costo de una venta ───────────────────────────────────────────

// SaleCostingRequest cuerpo de POST /api/costing/sale.
type SaleCostingRequest struct {
	Kind   string          `json:"kind" validate:"required,oneof=store online advance"`
	Record json.RawMessage `json:"record" validate:"required"`
}

// CostDetailDTO aporte de un lote.
type CostDetailDTO struct {
	PurchaseItemID string          `json:"purchase_item_id"`
	Quantity       float64         `json:"quantity"`
	UnitCost       float64         `json:"unit_cost"`
	CostPerKg      float64         `json:"cost_per_kg"`
	Cost           decimal.Decimal `json:"cost"`
}

// SaleItemCostDTO variante vendida con su costo por lote.
type SaleItemCostDTO struct {
	VariantID       string          `json:"variant_id"`
	ProductName     string          `json:"product_name"`
	VariantName     string          `json:"variant_name"`
	CategoryName    string          `json:"category_name"`
	Price           float64         `json:"price"`
	Weight          float64         `json:"weight"`
	Quantity        float64         `json:"quantity"`
	AverageUnitCost decimal.Decimal `json:"average_unit_cost"`
	Cost            decimal.Decimal `json:"cost"`
	Details         []CostDetailDTO `json:"details"`
}

// SaleCostingDTO respuesta de POST /api/costing/sale.
type SaleCostingDTO struct {
	Kind         string            `json:"kind"`
	Status       string            `json:"status"`
	Counted      bool              `json:"counted"`
	LedgerCost   decimal.Decimal   `json:"ledger_cost"`   // costo reconstruido desde el ledger
	ResolvedCost decimal.Decimal   `json:"resolved_cost"` // costo tras aplicar la regla de estado
	Revenue      decimal.Decimal   `json:"revenue"`
	Items        []SaleItemCostDTO `json:"items"`
}
