package charts

import (
	"time"

	"github.com/jhoicas/sales-insights/internal/domain/entity"
	nowcal "github.com/jhoicas/sales-insights/internal/infrastructure/calendar"
)

// Miércoles: la semana activa va del sábado 17 al viernes 23 de octubre de 2026.
var wednesday = time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC)

func day(d int) entity.Timestamp {
	return entity.At(time.Date(2026, 10, d, 15, 30, 0, 0, time.UTC))
}

func weekWindow() Window {
	return NewBucketer(nowcal.New(time.UTC), ModeWeek).Window(wednesday)
}

func lot(variant, purchaseItem, category string, qty, unitCost float64) entity.StockMovementItem {
	var cat *entity.Category
	if category != "" {
		cat = &entity.Category{ID: entity.Ref(category), Name: category}
	}
	return entity.StockMovementItem{
		ID:             entity.Ref(variant + "-" + purchaseItem),
		VariantID:      entity.Ref(variant),
		PurchaseItemID: entity.Ref(purchaseItem),
		Quantity:       entity.Num(qty),
		Price:          entity.Num(20),
		Variant: &entity.Variant{
			ID:      entity.Ref(variant),
			Product: &entity.Product{ID: "p-" + entity.Ref(variant), Name: "Café " + variant, Weight: entity.Num(0), Category: cat},
		},
		PurchaseItem: &entity.PurchaseItem{
			ID:       entity.Ref(purchaseItem),
			UnitCost: entity.Num(unitCost),
			Purchase: &entity.Purchase{ID: "c-" + entity.Ref(purchaseItem), CostPerKg: entity.Num(0)},
		},
	}
}

func ledger(total float64, lines ...entity.StockMovementItem) entity.Sale {
	return entity.Sale{
		ID:            "s",
		TotalAmount:   entity.Num(total),
		StockMovement: &entity.StockMovement{ID: "m", Items: lines},
	}
}

// ledger de referencia: lote A 2×10 y lote B 3×12 de la misma variante, costo 56.
func referenceLedger(total float64) entity.Sale {
	return ledger(total, lot("v1", "A", "Granos", 2, 10), lot("v1", "B", "Granos", 3, 12))
}

func store(id string, status entity.Status, at entity.Timestamp, sale entity.Sale) entity.StoreSale {
	return entity.StoreSale{ID: entity.Ref(id), Status: status, CompletedAt: at, Sale: sale}
}

func online(id string, status entity.Status, at entity.Timestamp, channel string, sale entity.Sale) entity.OnlineSale {
	s := entity.OnlineSale{ID: entity.Ref(id), Status: status, CompletedAt: at, Sale: sale}
	if channel != "" {
		s.Channel = &entity.Channel{ID: entity.Ref(channel), Name: channel}
	}
	return s
}

func advance(id string, status entity.Status, at entity.Timestamp, sale entity.Sale) entity.AdvanceSale {
	return entity.AdvanceSale{ID: entity.Ref(id), Status: status, UpdatedAt: at, Sale: sale}
}

// snapshot mezcla ventas que cuentan, filtradas por estado, fuera de ventana y sin fecha.
func snapshot() entity.SalesSnapshot {
	return entity.SalesSnapshot{
		Store: []entity.StoreSale{
			store("st1", entity.StatusCompleted, day(17), referenceLedger(100)),
			store("st2", entity.StatusPending, day(17), referenceLedger(100)),
			store("st3", entity.StatusCompleted, entity.Timestamp{}, referenceLedger(100)),
			store("st4", entity.StatusCompleted, day(10), referenceLedger(100)),
		},
		Online: []entity.OnlineSale{
			online("on1", entity.StatusCompleted, day(19), "Shopify", ledger(50, lot("v2", "C", "Tazas", 1, 20))),
			online("on2", entity.StatusCompleted, day(19), "Shopify", ledger(50, lot("v2", "C", "Tazas", 1, 20))),
			withReturn(online("on3", entity.StatusReturned, day(20), "", referenceLedger(100)), 7),
			online("on4", entity.StatusShipped, day(20), "Shopify", referenceLedger(100)),
		},
		Advance: []entity.AdvanceSale{
			advance("ad1", entity.StatusConfirmed, day(23), ledger(30, lot("v3", "D", "", 4, 5))),
			advance("ad2", entity.StatusCanceled, day(23), referenceLedger(100)),
			advance("ad3", entity.StatusPending, day(24), referenceLedger(100)),
		},
	}
}

func withReturn(s entity.OnlineSale, cost float64) entity.OnlineSale {
	s.ReturnCost = entity.Num(cost)
	return s
}
