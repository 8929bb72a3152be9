package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sales-insights/internal/domain/entity"
	"github.com/jhoicas/sales-insights/internal/domain/repository"
)

var _ repository.SalesSource = (*SalesRepo)(nil)

// saleDocument arma la venta con su ledger en el mismo formato JSON que expone la API
// REST del back-office, de modo que ambos adaptadores comparten la decodificación.
// Espera la tabla sales con alias s.
const saleDocument = `jsonb_build_object(
	'id', s.id,
	'totalAmount', s.total_amount,
	'discountAmount', s.discount_amount,
	'stockMovement', jsonb_build_object(
		'id', s.stock_movement_id,
		'items', COALESCE((
			SELECT jsonb_agg(jsonb_build_object(
				'id', smi.id,
				'variantId', smi.variant_id,
				'purchaseItemId', smi.purchase_item_id,
				'quantity', smi.quantity,
				'price', smi.price,
				'variant', CASE WHEN v.id IS NULL THEN NULL ELSE jsonb_build_object(
					'id', v.id,
					'product', jsonb_build_object(
						'id', p.id,
						'name', p.name,
						'weight', p.weight,
						'hasVariants', p.has_variants,
						'category', CASE WHEN c.id IS NULL THEN NULL ELSE jsonb_build_object('id', c.id, 'name', c.name) END
					),
					'attributeValues', COALESCE((
						SELECT jsonb_agg(jsonb_build_object('id', av.id, 'value', av.value) ORDER BY av.id)
						FROM variant_attribute_values vav
						JOIN attribute_values av ON av.id = vav.attribute_value_id
						WHERE vav.variant_id = v.id
					), '[]'::jsonb)
				) END,
				'purchaseItem', CASE WHEN pi.id IS NULL THEN NULL ELSE jsonb_build_object(
					'id', pi.id,
					'unitCost', pi.unit_cost,
					'purchase', CASE WHEN pu.id IS NULL THEN NULL ELSE jsonb_build_object('id', pu.id, 'costPerKg', pu.cost_per_kg) END
				) END
			) ORDER BY smi.id)
			FROM stock_movement_items smi
			LEFT JOIN variants       v  ON v.id  = smi.variant_id
			LEFT JOIN products       p  ON p.id  = v.product_id
			LEFT JOIN categories     c  ON c.id  = p.category_id
			LEFT JOIN purchase_items pi ON pi.id = smi.purchase_item_id
			LEFT JOIN purchases      pu ON pu.id = pi.purchase_id
			WHERE smi.stock_movement_id = s.stock_movement_id
		), '[]'::jsonb)
	)
) AS sale`

// SalesRepo fuente de ventas que lee directamente la base del back-office (read-only).
type SalesRepo struct {
	db pgxscan.Querier
	sb squirrel.StatementBuilderType
}

// NewSalesRepository construye el adaptador. db suele ser un *pgxpool.Pool.
func NewSalesRepository(db pgxscan.Querier) *SalesRepo {
	return &SalesRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// saleRow fila común a los tres tipos de venta; cada consulta llena solo sus columnas.
type saleRow struct {
	ID          string              `db:"id"`
	Status      string              `db:"status"`
	ClosedAt    *time.Time          `db:"closed_at"`
	ChannelID   *string             `db:"channel_id"`
	ChannelName *string             `db:"channel_name"`
	ReturnCost  decimal.NullDecimal `db:"return_cost"`
	Sale        []byte              `db:"sale"`
}

func (r saleRow) closedAt() entity.Timestamp {
	if r.ClosedAt == nil {
		return entity.Timestamp{}
	}
	return entity.At(*r.ClosedAt)
}

func (r saleRow) ledger() (entity.Sale, error) {
	var sale entity.Sale
	if len(r.Sale) == 0 {
		return sale, nil
	}
	if err := json.Unmarshal(r.Sale, &sale); err != nil {
		return sale, fmt.Errorf("venta %s: %w", r.ID, err)
	}
	return sale, nil
}

// ListStoreSales ventas de tienda cerradas dentro de la ventana.
func (r *SalesRepo) ListStoreSales(ctx context.Context, q repository.SalesQuery) ([]entity.StoreSale, error) {
	query := r.sb.
		Select("ss.id::text AS id", "ss.status::text AS status", "ss.completed_at AS closed_at", saleDocument).
		From("store_sales ss").
		Join("sales s ON s.id = ss.sale_id")
	query = withinWindow(query, "ss.completed_at", q).OrderBy("ss.completed_at", "ss.id")

	rows, err := r.selectRows(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sales.ListStoreSales: %w", err)
	}
	out := make([]entity.StoreSale, 0, len(rows))
	for _, row := range rows {
		sale, err := row.ledger()
		if err != nil {
			return nil, fmt.Errorf("sales.ListStoreSales: %w", err)
		}
		out = append(out, entity.StoreSale{
			ID:          entity.Ref(row.ID),
			Status:      entity.Status(row.Status),
			CompletedAt: row.closedAt(),
			Sale:        sale,
		})
	}
	return out, nil
}

// ListOnlineSales ventas online con su canal y el costo de devolución.
func (r *SalesRepo) ListOnlineSales(ctx context.Context, q repository.SalesQuery) ([]entity.OnlineSale, error) {
	query := r.sb.
		Select(
			"os.id::text AS id",
			"os.status::text AS status",
			"os.completed_at AS closed_at",
			"sc.id::text AS channel_id",
			"sc.name AS channel_name",
			"os.return_cost",
			saleDocument,
		).
		From("online_sales os").
		Join("sales s ON s.id = os.sale_id").
		LeftJoin("sales_channels sc ON sc.id = os.channel_id")
	query = withinWindow(query, "os.completed_at", q).OrderBy("os.completed_at", "os.id")

	rows, err := r.selectRows(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sales.ListOnlineSales: %w", err)
	}
	out := make([]entity.OnlineSale, 0, len(rows))
	for _, row := range rows {
		sale, err := row.ledger()
		if err != nil {
			return nil, fmt.Errorf("sales.ListOnlineSales: %w", err)
		}
		rec := entity.OnlineSale{
			ID:          entity.Ref(row.ID),
			Status:      entity.Status(row.Status),
			CompletedAt: row.closedAt(),
			Sale:        sale,
		}
		if row.ChannelID != nil {
			rec.Channel = &entity.Channel{ID: entity.Ref(*row.ChannelID)}
			if row.ChannelName != nil {
				rec.Channel.Name = *row.ChannelName
			}
		}
		if row.ReturnCost.Valid {
			rec.ReturnCost = entity.Num(row.ReturnCost.Decimal.InexactFloat64())
		}
		out = append(out, rec)
	}
	return out, nil
}

// ListAdvanceSales ventas con anticipo; la ventana se aplica sobre updated_at.
func (r *SalesRepo) ListAdvanceSales(ctx context.Context, q repository.SalesQuery) ([]entity.AdvanceSale, error) {
	query := r.sb.
		Select("adv.id::text AS id", "adv.status::text AS status", "adv.updated_at AS closed_at", saleDocument).
		From("advance_sales adv").
		Join("sales s ON s.id = adv.sale_id")
	query = withinWindow(query, "adv.updated_at", q).OrderBy("adv.updated_at", "adv.id")

	rows, err := r.selectRows(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sales.ListAdvanceSales: %w", err)
	}
	out := make([]entity.AdvanceSale, 0, len(rows))
	for _, row := range rows {
		sale, err := row.ledger()
		if err != nil {
			return nil, fmt.Errorf("sales.ListAdvanceSales: %w", err)
		}
		out = append(out, entity.AdvanceSale{
			ID:        entity.Ref(row.ID),
			Status:    entity.Status(row.Status),
			UpdatedAt: row.closedAt(),
			Sale:      sale,
		})
	}
	return out, nil
}

func (r *SalesRepo) selectRows(ctx context.Context, query squirrel.SelectBuilder) ([]saleRow, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []saleRow
	if err := pgxscan.Select(ctx, r.db, &rows, sql, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// withinWindow agrega el filtro [From, To) cuando la ventana viene informada.
func withinWindow(query squirrel.SelectBuilder, column string, q repository.SalesQuery) squirrel.SelectBuilder {
	if !q.From.IsZero() {
		query = query.Where(squirrel.GtOrEq{column: q.From})
	}
	if !q.To.IsZero() {
		query = query.Where(squirrel.Lt{column: q.To})
	}
	return query
}
