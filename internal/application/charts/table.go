package charts

import "sort"

// Table valores agregados por serie y bucket. Las series se registran en orden de
// primera aparición, lo que hace el resultado determinista para una misma entrada.
type Table struct {
	Window Window

	series []string
	values map[string][]float64
	counts []int
}

func newTable(w Window) *Table {
	return &Table{
		Window: w,
		values: make(map[string][]float64),
		counts: make([]int, len(w.Buckets)),
	}
}

func (t *Table) add(series string, bucket int, v float64) {
	row, ok := t.values[series]
	if !ok {
		row = make([]float64, len(t.Window.Buckets))
		t.values[series] = row
		t.series = append(t.series, series)
	}
	row[bucket] += v
}

// Series nombres de las series en su orden de presentación.
func (t *Table) Series() []string {
	out := make([]string, len(t.series))
	copy(out, t.series)
	return out
}

// Value valor de una serie en un bucket (0 si la serie no existe).
func (t *Table) Value(series string, bucket int) float64 {
	row, ok := t.values[series]
	if !ok || bucket < 0 || bucket >= len(row) {
		return 0
	}
	return row[bucket]
}

// Total suma de una serie en toda la ventana.
func (t *Table) Total(series string) float64 {
	var sum float64
	for _, v := range t.values[series] {
		sum += v
	}
	return sum
}

// BucketTotal suma de todas las series en un bucket.
func (t *Table) BucketTotal(bucket int) float64 {
	var sum float64
	for _, s := range t.series {
		sum += t.values[s][bucket]
	}
	return sum
}

// Counts cantidad de items ubicados en cada bucket.
func (t *Table) Counts() []int {
	out := make([]int, len(t.counts))
	copy(out, t.counts)
	return out
}

// ItemCount items ubicados en toda la ventana.
func (t *Table) ItemCount() int {
	n := 0
	for _, c := range t.counts {
		n += c
	}
	return n
}

// EnsureSeries fija las series indicadas al inicio (en ese orden), creándolas en cero si
// ningún item aportó a ellas. El resto conserva su orden relativo.
func (t *Table) EnsureSeries(names ...string) *Table {
	fixed := make(map[string]bool, len(names))
	ordered := make([]string, 0, len(names)+len(t.series))
	for _, n := range names {
		if fixed[n] {
			continue
		}
		fixed[n] = true
		if _, ok := t.values[n]; !ok {
			t.values[n] = make([]float64, len(t.Window.Buckets))
		}
		ordered = append(ordered, n)
	}
	for _, s := range t.series {
		if !fixed[s] {
			ordered = append(ordered, s)
		}
	}
	t.series = ordered
	return t
}

// SortSeriesByTotal ordena las series por total descendente y luego por nombre.
func (t *Table) SortSeriesByTotal() *Table {
	totals := make(map[string]float64, len(t.series))
	for _, s := range t.series {
		totals[s] = t.Total(s)
	}
	sort.SliceStable(t.series, func(i, j int) bool {
		a, b := t.series[i], t.series[j]
		if totals[a] != totals[b] {
			return totals[a] > totals[b]
		}
		return a < b
	})
	return t
}
