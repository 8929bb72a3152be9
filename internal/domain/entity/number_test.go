package entity_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sales-insights/internal/domain/entity"
)

func TestNumber_Coercion(t *testing.T) {
	tests := []struct {
		raw   string
		value float64
		valid bool
	}{
		{`12.5`, 12.5, true},
		{`"7"`, 7, true},
		{`" 3.25 "`, 3.25, true},
		{`0`, 0, true},
		{`true`, 1, true},
		{`false`, 0, true},
		{`null`, 0, false},
		{`""`, 0, false},
		{`"abc"`, 0, false},
		{`"NaN"`, 0, false},
		{`"Infinity"`, 0, false},
		{`{"a":1}`, 0, false},
		{`[1,2]`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var holder struct {
				N entity.Number `json:"n"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"n":`+tt.raw+`}`), &holder))
			assert.Equal(t, tt.value, holder.N.Float())
			assert.Equal(t, tt.valid, holder.N.Valid())
		})
	}
}

func TestNumber_CampoAusente(t *testing.T) {
	var holder struct {
		N entity.Number `json:"n"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &holder))
	assert.False(t, holder.N.Valid())
	assert.Equal(t, 0.0, holder.N.Float())
}

func TestNum_NoFinito(t *testing.T) {
	assert.False(t, entity.Num(math.NaN()).Valid())
	assert.False(t, entity.Num(math.Inf(1)).Valid())
	assert.Equal(t, 0.0, entity.Num(math.Inf(-1)).Float())
}

func TestNumber_RoundTripConservaValidez(t *testing.T) {
	in := struct {
		A entity.Number `json:"a"`
		B entity.Number `json:"b"`
	}{A: entity.Num(4.5)}

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":4.5,"b":null}`, string(raw))

	var out struct {
		A entity.Number `json:"a"`
		B entity.Number `json:"b"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in.A, out.A)
	assert.False(t, out.B.Valid())
}

func TestRef_AceptaNumeroOString(t *testing.T) {
	var refs []entity.Ref
	require.NoError(t, json.Unmarshal([]byte(`[12, "ab-3", null]`), &refs))
	assert.Equal(t, []entity.Ref{"12", "ab-3", ""}, refs)
}

func TestTimestamp_Formatos(t *testing.T) {
	tests := []struct {
		raw     string
		present bool
		want    time.Time
	}{
		{`"2026-10-17T09:30:00.000Z"`, true, time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)},
		{`"2026-10-17T09:30:00Z"`, true, time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)},
		{`"2026-10-17 09:30:00"`, true, time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)},
		{`"2026-10-17"`, true, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)},
		{`null`, false, time.Time{}},
		{`""`, false, time.Time{}},
		{`"ayer"`, false, time.Time{}},
		{`12345`, false, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var ts entity.Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ts))
			assert.Equal(t, tt.present, ts.Present())
			if tt.present {
				assert.True(t, tt.want.Equal(ts.Time))
			}
		})
	}
}

func TestOnlineSale_ChannelName(t *testing.T) {
	assert.Equal(t, entity.UnknownGroup, entity.OnlineSale{}.ChannelName())
	assert.Equal(t, "Marketplace", entity.OnlineSale{Channel: &entity.Channel{Name: "Marketplace"}}.ChannelName())
}

func TestVariant_DisplayName(t *testing.T) {
	v := &entity.Variant{
		Product:         &entity.Product{Name: "Camisa", HasVariants: true},
		AttributeValues: []entity.AttributeValue{{Value: "M"}, {Value: "Azul"}, {Name: "Algodón"}},
	}
	assert.Equal(t, "M / Azul / Algodón", v.DisplayName())

	v.Product.HasVariants = false
	assert.Equal(t, "", v.DisplayName())

	var missing *entity.Variant
	assert.Equal(t, "", missing.DisplayName())
}

func TestSalesSnapshot_Records(t *testing.T) {
	snap := entity.SalesSnapshot{
		Store:   []entity.StoreSale{{ID: "s1"}},
		Online:  []entity.OnlineSale{{ID: "o1"}, {ID: "o2"}},
		Advance: []entity.AdvanceSale{{ID: "a1"}},
	}
	records := snap.Records()
	require.Len(t, records, 4)
	assert.Equal(t, entity.SaleKindStore, records[0].Kind())
	assert.Equal(t, entity.SaleKindOnline, records[1].Kind())
	assert.Equal(t, entity.SaleKindAdvance, records[3].Kind())
}
