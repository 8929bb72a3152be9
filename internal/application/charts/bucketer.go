// Package charts agrupa ventas en buckets de calendario (semana anclada en sábado o
// año de doce meses) y arma las series que consumen los gráficos del back-office.
package charts

import (
	"fmt"
	"time"

	"github.com/jhoicas/sales-insights/internal/domain"
	"github.com/jhoicas/sales-insights/internal/domain/calendar"
)

// Mode eje temporal del gráfico.
type Mode string

const (
	ModeWeek  Mode = "week"
	ModeMonth Mode = "month"
)

// AnchorWeekday primer día de la semana de los reportes.
const AnchorWeekday = time.Saturday

// Etiquetas de los buckets, indexadas por time.Weekday y por mes (0 = enero).
var (
	weekdayLabels = [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}
	monthLabels   = [12]string{
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	}
)

// ParseMode valida el modo recibido; vacío equivale a semana.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeWeek:
		return ModeWeek, nil
	case ModeMonth:
		return ModeMonth, nil
	default:
		return "", fmt.Errorf("modo %q: %w", s, domain.ErrInvalidInput)
	}
}

// LabelKey nombre del campo de etiqueta en las filas del gráfico.
func (m Mode) LabelKey() string {
	if m == ModeMonth {
		return "month"
	}
	return "day"
}

// Bucket un día (semana) o un mes (año) del eje temporal.
type Bucket struct {
	Label string
	Key   string
	Start time.Time
}

// Window buckets activos para un "ahora" dado. From inclusive, To exclusivo.
type Window struct {
	Mode    Mode
	Buckets []Bucket
	From    time.Time
	To      time.Time

	keyOf func(time.Time) string
	index map[string]int
}

// Locate devuelve el bucket al que pertenece t, o false si t cae fuera de la ventana.
func (w Window) Locate(t time.Time) (int, bool) {
	i, ok := w.index[w.keyOf(t)]
	return i, ok
}

// Bucketer genera la ventana activa según el modo. No guarda estado entre llamadas.
type Bucketer struct {
	cal  calendar.Calendar
	mode Mode
}

// NewBucketer construye el bucketer para un modo.
func NewBucketer(cal calendar.Calendar, mode Mode) Bucketer {
	return Bucketer{cal: cal, mode: mode}
}

// Window calcula los buckets para now.
//   - semana: 7 días desde el sábado anterior (o igual) a now.
//   - mes: 12 meses del año calendario de now.
func (b Bucketer) Window(now time.Time) Window {
	if b.mode == ModeMonth {
		return b.yearWindow(now)
	}
	return b.weekWindow(now)
}

func (b Bucketer) weekWindow(now time.Time) Window {
	start := b.cal.StartOfAnchoredWeek(now, AnchorWeekday)
	w := Window{
		Mode:    ModeWeek,
		Buckets: make([]Bucket, 0, 7),
		From:    start,
		To:      start.AddDate(0, 0, 7),
		keyOf:   b.cal.DayKey,
		index:   make(map[string]int, 7),
	}
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		key := b.cal.DayKey(day)
		w.index[key] = i
		w.Buckets = append(w.Buckets, Bucket{
			Label: weekdayLabels[(int(AnchorWeekday)+i)%7],
			Key:   key,
			Start: day,
		})
	}
	return w
}

func (b Bucketer) yearWindow(now time.Time) Window {
	start := b.cal.StartOfYear(now)
	w := Window{
		Mode:    ModeMonth,
		Buckets: make([]Bucket, 0, 12),
		From:    start,
		To:      start.AddDate(1, 0, 0),
		keyOf:   b.cal.MonthKey,
		index:   make(map[string]int, 12),
	}
	for m := 0; m < 12; m++ {
		first := start.AddDate(0, m, 0)
		key := b.cal.MonthKey(first)
		w.index[key] = m
		w.Buckets = append(w.Buckets, Bucket{Label: monthLabels[m], Key: key, Start: first})
	}
	return w
}

// Contribution valor de una métrica atribuido a una serie.
type Contribution struct {
	Series string
	Value  float64
}

// Bucketize reparte items en los buckets de la ventana. at ubica cada item en el tiempo
// (false = sin fecha, se descarta) y extract devuelve sus aportes por serie; un item sin
// aportes (p. ej. filtrado por estado) no se cuenta en ningún bucket.
func Bucketize[T any](w Window, items []T, at func(T) (time.Time, bool), extract func(T) []Contribution) *Table {
	t := newTable(w)
	for _, it := range items {
		ts, ok := at(it)
		if !ok {
			continue
		}
		idx, ok := w.Locate(ts)
		if !ok {
			continue
		}
		contribs := extract(it)
		if len(contribs) == 0 {
			continue
		}
		t.counts[idx]++
		for _, c := range contribs {
			t.add(c.Series, idx, c.Value)
		}
	}
	return t
}
