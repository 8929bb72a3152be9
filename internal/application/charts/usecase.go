package charts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/sales-insights/internal/application/dto"
	"github.com/jhoicas/sales-insights/internal/domain"
	"github.com/jhoicas/sales-insights/internal/domain/calendar"
	"github.com/jhoicas/sales-insights/internal/domain/costing"
	"github.com/jhoicas/sales-insights/internal/domain/entity"
	"github.com/jhoicas/sales-insights/internal/domain/repository"
	"github.com/jhoicas/sales-insights/pkg/logger"
)

const tracerName = "github.com/jhoicas/sales-insights/internal/application/charts"

// UseCase orquesta la lectura de ventas y el motor de agregación para cada gráfico.
//
// Es la única capa con I/O: carga las listas de la fuente en paralelo y entrega
// slices inmutables al motor, que es puro.
type UseCase struct {
	source   repository.SalesSource
	cal      calendar.Calendar
	resolver costing.Resolver
	clock    calendar.Clock
	log      *logger.Logger
	tracer   trace.Tracer
}

// NewUseCase construye el caso de uso. clock nil equivale a time.Now.
func NewUseCase(
	source repository.SalesSource,
	cal calendar.Calendar,
	resolver costing.Resolver,
	clock calendar.Clock,
	log *logger.Logger,
) *UseCase {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		source:   source,
		cal:      cal,
		resolver: resolver,
		clock:    clock,
		log:      log.Component("charts"),
		tracer:   otel.Tracer(tracerName),
	}
}

// SalesActivity GET /api/charts/sales: ventas que cuentan por tipo y bucket.
func (uc *UseCase) SalesActivity(ctx context.Context, q dto.ChartQuery) (*dto.ChartDTO, error) {
	w, err := uc.window(q)
	if err != nil {
		return nil, err
	}
	snap, err := uc.load(ctx, w, entity.SaleKinds...)
	if err != nil {
		return nil, err
	}
	chart := RenderValues(SalesActivity(w, snap.Records()), countPlaces)
	return &chart, nil
}

// Income GET /api/charts/income: ingreso, costo y ganancia por bucket.
func (uc *UseCase) Income(ctx context.Context, q dto.ChartQuery) (*dto.ChartDTO, error) {
	w, err := uc.window(q)
	if err != nil {
		return nil, err
	}
	snap, err := uc.load(ctx, w, entity.SaleKinds...)
	if err != nil {
		return nil, err
	}
	chart := RenderValues(IncomeOverview(w, snap.Records(), uc.resolver), moneyPlaces)
	return &chart, nil
}

// Channels GET /api/charts/channels: ventas online por canal.
func (uc *UseCase) Channels(ctx context.Context, q dto.ChartQuery) (*dto.GroupChartDTO, error) {
	w, err := uc.window(q)
	if err != nil {
		return nil, err
	}
	snap, err := uc.load(ctx, w, entity.SaleKindOnline)
	if err != nil {
		return nil, err
	}
	chart := RenderGroups(NewChannelAggregator(uc.resolver).ByChannel(w, snap.Online), ParseView(q.View))
	return &chart, nil
}

// Categories GET /api/charts/categories: unidades vendidas por categoría.
func (uc *UseCase) Categories(ctx context.Context, q dto.ChartQuery) (*dto.GroupChartDTO, error) {
	w, err := uc.window(q)
	if err != nil {
		return nil, err
	}
	snap, err := uc.load(ctx, w, entity.SaleKinds...)
	if err != nil {
		return nil, err
	}
	chart := RenderGroups(NewChannelAggregator(uc.resolver).ByCategory(w, snap.Records()), ParseView(q.View))
	return &chart, nil
}

// Summary GET /api/charts/summary: totales de la ventana activa.
func (uc *UseCase) Summary(ctx context.Context, q dto.ChartQuery) (*dto.SummaryDTO, error) {
	w, err := uc.window(q)
	if err != nil {
		return nil, err
	}
	snap, err := uc.load(ctx, w, entity.SaleKinds...)
	if err != nil {
		return nil, err
	}

	out := &dto.SummaryDTO{
		Mode: string(w.Mode),
		From: w.From.Format(dateLayout),
		To:   w.To.AddDate(0, 0, -1).Format(dateLayout),
	}
	income, cost := decimal.Zero, decimal.Zero
	for _, rec := range snap.Records() {
		at, ok := rec.CompletionTime()
		if !ok || !costing.Counts(rec) {
			continue
		}
		if _, in := w.Locate(at); !in {
			continue
		}
		switch rec.Kind() {
		case entity.SaleKindStore:
			out.StoreSales++
		case entity.SaleKindOnline:
			out.OnlineSales++
		case entity.SaleKindAdvance:
			out.AdvanceSales++
		}
		income = income.Add(decimal.NewFromFloat(uc.resolver.Revenue(rec)))
		cost = cost.Add(decimal.NewFromFloat(uc.resolver.Cost(rec)))
	}

	profit := income.Sub(cost)
	out.Income = income.Round(moneyPlaces)
	out.Cost = cost.Round(moneyPlaces)
	out.Profit = profit.Round(moneyPlaces)
	out.MarginPct = decimal.Zero
	if income.IsPositive() {
		out.MarginPct = profit.Div(income).Mul(hundred).Round(moneyPlaces)
	}
	return out, nil
}

// SaleCosting POST /api/costing/sale: desglose del costo de una venta enviada en el cuerpo.
func (uc *UseCase) SaleCosting(ctx context.Context, req dto.SaleCostingRequest) (*dto.SaleCostingDTO, error) {
	_, span := uc.tracer.Start(ctx, "charts.SaleCosting", trace.WithAttributes(attribute.String("kind", req.Kind)))
	defer span.End()

	rec, err := decodeRecord(entity.SaleKind(req.Kind), req.Record)
	if err != nil {
		return nil, err
	}

	items := costing.ProjectSaleItems(rec.Ledger().Items(), uc.resolver.DefaultCostPerKg())
	out := &dto.SaleCostingDTO{
		Kind:         string(rec.Kind()),
		Status:       string(rec.CurrentStatus()),
		Counted:      costing.Counts(rec),
		LedgerCost:   decimal.NewFromFloat(costing.ItemsCost(items)).Round(moneyPlaces),
		ResolvedCost: decimal.NewFromFloat(uc.resolver.Cost(rec)).Round(moneyPlaces),
		Revenue:      decimal.NewFromFloat(uc.resolver.Revenue(rec)).Round(moneyPlaces),
		Items:        make([]dto.SaleItemCostDTO, 0, len(items)),
	}
	for _, it := range items {
		item := dto.SaleItemCostDTO{
			VariantID:       string(it.VariantID),
			ProductName:     it.ProductName,
			VariantName:     it.VariantName,
			CategoryName:    it.CategoryName,
			Price:           it.Price,
			Weight:          it.Weight,
			Quantity:        it.Quantity(),
			AverageUnitCost: it.AverageUnitCost().Round(moneyPlaces),
			Cost:            decimal.NewFromFloat(it.Cost()).Round(moneyPlaces),
			Details:         make([]dto.CostDetailDTO, 0, len(it.Details)),
		}
		for _, d := range it.Details {
			item.Details = append(item.Details, dto.CostDetailDTO{
				PurchaseItemID: string(d.PurchaseItemID),
				Quantity:       d.Quantity,
				UnitCost:       d.UnitCost,
				CostPerKg:      d.CostPerKg,
				Cost:           decimal.NewFromFloat(costing.DetailCost(it.Weight, d)).Round(moneyPlaces),
			})
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func decodeRecord(kind entity.SaleKind, raw json.RawMessage) (entity.SaleRecord, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("record vacío: %w", domain.ErrInvalidInput)
	}
	var (
		rec entity.SaleRecord
		err error
	)
	switch kind {
	case entity.SaleKindStore:
		var s entity.StoreSale
		err = json.Unmarshal(raw, &s)
		rec = s
	case entity.SaleKindOnline:
		var s entity.OnlineSale
		err = json.Unmarshal(raw, &s)
		rec = s
	case entity.SaleKindAdvance:
		var s entity.AdvanceSale
		err = json.Unmarshal(raw, &s)
		rec = s
	default:
		return nil, fmt.Errorf("tipo de venta %q: %w", kind, domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("decodificar venta %s: %w: %v", kind, domain.ErrInvalidInput, err)
	}
	return rec, nil
}

// window valida el modo y calcula la ventana para el "ahora" del reloj.
func (uc *UseCase) window(q dto.ChartQuery) (Window, error) {
	mode, err := ParseMode(q.Mode)
	if err != nil {
		return Window{}, err
	}
	return NewBucketer(uc.cal, mode).Window(uc.clock()), nil
}

// load lee en paralelo los tipos de venta pedidos para la ventana.
func (uc *UseCase) load(ctx context.Context, w Window, kinds ...entity.SaleKind) (entity.SalesSnapshot, error) {
	ctx, span := uc.tracer.Start(ctx, "charts.load", trace.WithAttributes(
		attribute.String("mode", string(w.Mode)),
		attribute.String("from", w.From.Format(time.RFC3339)),
		attribute.String("to", w.To.Format(time.RFC3339)),
	))
	defer span.End()

	var snap entity.SalesSnapshot
	q := repository.SalesQuery{From: w.From, To: w.To}
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		kind := kind
		switch kind {
		case entity.SaleKindStore:
			g.Go(func() (err error) {
				snap.Store, err = uc.source.ListStoreSales(gctx, q)
				return wrapUpstream(kind, err)
			})
		case entity.SaleKindOnline:
			g.Go(func() (err error) {
				snap.Online, err = uc.source.ListOnlineSales(gctx, q)
				return wrapUpstream(kind, err)
			})
		case entity.SaleKindAdvance:
			g.Go(func() (err error) {
				snap.Advance, err = uc.source.ListAdvanceSales(gctx, q)
				return wrapUpstream(kind, err)
			})
		}
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cargar ventas")
		uc.log.Error().Err(err).Str("mode", string(w.Mode)).Msg("no se pudieron cargar las ventas")
		return entity.SalesSnapshot{}, err
	}

	uc.log.Debug().
		Str("mode", string(w.Mode)).
		Int("store", len(snap.Store)).
		Int("online", len(snap.Online)).
		Int("advance", len(snap.Advance)).
		Msg("ventas cargadas")
	return snap, nil
}

func wrapUpstream(kind entity.SaleKind, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("cargar ventas %s: %w: %w", kind, domain.ErrUpstream, err)
}
