package charts

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/sales-insights/internal/application/dto"
)

const (
	dateLayout = "2006-01-02"

	countPlaces   = 0
	moneyPlaces   = 2
	percentPlaces = 1
)

var hundred = decimal.NewFromInt(100)

// labelPrinter formatea los porcentajes con la convención del back-office ("12,5 %").
var labelPrinter = message.NewPrinter(language.French)

// View presentación de las tablas de grupos.
type View string

const (
	ViewCount   View = "count"
	ViewPercent View = "percent"
)

// ParseView normaliza la vista; vacío equivale a conteo.
func ParseView(s string) View {
	if View(s) == ViewPercent {
		return ViewPercent
	}
	return ViewCount
}

// round redondea con decimal para no arrastrar ruido de punto flotante al JSON.
func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// percent count / total * 100 redondeado a un decimal; 0 si no hay total.
func percent(count, total float64) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(count).Div(decimal.NewFromFloat(total)).Mul(hundred).Round(percentPlaces)
}

// render convierte la tabla en el DTO del gráfico aplicando cell a cada valor.
func render(t *Table, cell func(series string, bucket int) float64) dto.ChartDTO {
	w := t.Window
	series := t.Series()
	rows := make([]dto.ChartRow, 0, len(w.Buckets))
	for i, b := range w.Buckets {
		values := make(map[string]float64, len(series))
		for _, s := range series {
			values[s] = cell(s, i)
		}
		rows = append(rows, dto.ChartRow{LabelKey: w.Mode.LabelKey(), Label: b.Label, Values: values})
	}
	return dto.ChartDTO{
		Mode:     string(w.Mode),
		LabelKey: w.Mode.LabelKey(),
		From:     w.From.Format(dateLayout),
		To:       w.To.AddDate(0, 0, -1).Format(dateLayout),
		Series:   series,
		Rows:     rows,
	}
}

// RenderValues filas con los valores almacenados redondeados a places decimales.
func RenderValues(t *Table, places int32) dto.ChartDTO {
	return render(t, func(s string, i int) float64 {
		return round(t.Value(s, i), places)
	})
}

// RenderGroups filas de conteos o de porcentajes por bucket. El porcentaje se deriva aquí,
// en presentación, y nunca se vuelve a agregar.
func RenderGroups(t *Table, view View) dto.GroupChartDTO {
	var chart dto.ChartDTO
	if view == ViewPercent {
		chart = render(t, func(s string, i int) float64 {
			return percent(t.Value(s, i), t.BucketTotal(i)).InexactFloat64()
		})
	} else {
		chart = RenderValues(t, countPlaces)
	}

	var total float64
	for _, s := range t.Series() {
		total += t.Total(s)
	}
	return dto.GroupChartDTO{
		ChartDTO: chart,
		View:     string(view),
		Total:    total,
		Shares:   Shares(t),
	}
}

// Shares participación de cada serie sobre el total de la ventana.
func Shares(t *Table) []dto.ShareDTO {
	series := t.Series()
	var total float64
	for _, s := range series {
		total += t.Total(s)
	}
	out := make([]dto.ShareDTO, 0, len(series))
	for _, s := range series {
		count := t.Total(s)
		pct := percent(count, total)
		out = append(out, dto.ShareDTO{
			Name:    s,
			Count:   count,
			Percent: pct,
			Label:   labelPrinter.Sprintf("%.1f %%", pct.InexactFloat64()),
		})
	}
	return out
}
