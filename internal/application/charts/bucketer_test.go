package charts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sales-insights/internal/domain"
	nowcal "github.com/jhoicas/sales-insights/internal/infrastructure/calendar"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeWeek, false},
		{"week", ModeWeek, false},
		{"month", ModeMonth, false},
		{"year", "", true},
		{"WEEK", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, map[Mode]string{ModeWeek: "day", ModeMonth: "month"}[got], got.LabelKey())
		})
	}
}

func TestBucketer_WeekStartsOnPrecedingSaturday(t *testing.T) {
	w := weekWindow()

	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC), w.To)
	require.Len(t, w.Buckets, 7)

	labels := make([]string, 0, 7)
	for i, b := range w.Buckets {
		labels = append(labels, b.Label)
		assert.Equal(t, w.From.AddDate(0, 0, i), b.Start, "días contiguos")
	}
	assert.Equal(t, []string{"samedi", "dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi"}, labels)
	assert.Equal(t, "2026-10-17", w.Buckets[0].Key)
	assert.Equal(t, "2026-10-23", w.Buckets[6].Key)
}

func TestBucketer_SaturdayIsItsOwnWeekStart(t *testing.T) {
	sat := time.Date(2026, 10, 17, 23, 59, 0, 0, time.UTC)
	w := NewBucketer(nowcal.New(time.UTC), ModeWeek).Window(sat)
	assert.Equal(t, "2026-10-17", w.Buckets[0].Key)
}

func TestBucketer_MonthWindowIsCalendarYear(t *testing.T) {
	w := NewBucketer(nowcal.New(time.UTC), ModeMonth).Window(wednesday)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), w.To)
	require.Len(t, w.Buckets, 12)
	assert.Equal(t, "janvier", w.Buckets[0].Label)
	assert.Equal(t, "février", w.Buckets[1].Label)
	assert.Equal(t, "décembre", w.Buckets[11].Label)
	assert.Equal(t, "2026-10", w.Buckets[9].Key)
}

func TestWindow_Locate(t *testing.T) {
	w := weekWindow()

	idx, ok := w.Locate(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = w.Locate(time.Date(2026, 10, 16, 23, 59, 0, 0, time.UTC))
	assert.False(t, ok, "viernes anterior")
	_, ok = w.Locate(time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok, "sábado siguiente")
}

func TestWindow_LocateUsesCalendarZone(t *testing.T) {
	bogota, err := nowcal.LoadLocation("America/Bogota")
	require.NoError(t, err)
	w := NewBucketer(nowcal.New(bogota), ModeWeek).Window(wednesday)

	// 2026-10-18 03:00 UTC es todavía sábado 17 en Bogotá (UTC-5).
	idx, ok := w.Locate(time.Date(2026, 10, 18, 3, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestBucketize_SkipsItemsWithoutDateOrOutsideWindow(t *testing.T) {
	type item struct {
		at    time.Time
		ok    bool
		value float64
	}
	items := []item{
		{at: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC), ok: true, value: 2},
		{at: time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC), ok: true, value: 3},
		{ok: false, value: 100},
		{at: time.Date(2026, 10, 30, 9, 0, 0, 0, time.UTC), ok: true, value: 100},
		{at: time.Date(2026, 10, 23, 9, 0, 0, 0, time.UTC), ok: true, value: 0},
	}

	table := Bucketize(weekWindow(), items,
		func(it item) (time.Time, bool) { return it.at, it.ok },
		func(it item) []Contribution {
			if it.value == 0 {
				return nil
			}
			return []Contribution{{Series: "x", Value: it.value}}
		})

	assert.Equal(t, 5.0, table.Value("x", 0))
	assert.Equal(t, 5.0, table.Total("x"))
	assert.Equal(t, []int{2, 0, 0, 0, 0, 0, 0}, table.Counts())
	assert.Equal(t, 2, table.ItemCount())
	assert.Zero(t, table.Value("missing", 0))
}
