package entity

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Number es un campo numérico leído del back-office con la política de degradación
// silenciosa: cualquier valor ausente, nulo, no numérico o no finito vale 0.
// Valid indica si el upstream envió realmente un número.
type Number struct {
	value float64
	valid bool
}

// Num construye un Number a partir de un float; NaN e ±Inf quedan inválidos (0).
func Num(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{value: v, valid: true}
}

// Float devuelve el valor coaccionado (0 si el campo es inválido).
func (n Number) Float() float64 {
	if !n.valid {
		return 0
	}
	return n.value
}

// Valid devuelve true si el campo contenía un número finito.
func (n Number) Valid() bool { return n.valid }

// UnmarshalJSON acepta números, strings numéricos y booleanos; nunca falla.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case 'n': // null
		return nil
	case 't':
		*n = Num(1)
		return nil
	case 'f':
		*n = Num(0)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*n = Num(v)
		}
		return nil
	case '{', '[':
		return nil
	}
	if v, err := strconv.ParseFloat(string(data), 64); err == nil {
		*n = Num(v)
	}
	return nil
}

// MarshalJSON escribe null para campos inválidos, de modo que el round-trip conserva Valid.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, n.value, 'g', -1, 64), nil
}

// Ref identificador del back-office; acepta ids numéricos o string y los guarda como texto.
type Ref string

// UnmarshalJSON acepta "12", 12 o null.
func (r *Ref) UnmarshalJSON(data []byte) error {
	*r = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == 'n' {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Ref(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*r = Ref(num.String())
	return nil
}

// timestampLayouts formatos de fecha que devuelve el back-office.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp fecha tolerante: null, vacío o imparseable se considera ausente.
type Timestamp struct {
	time.Time
}

// At construye un Timestamp presente.
func At(t time.Time) Timestamp { return Timestamp{Time: t} }

// Present indica si hay una fecha utilizable.
func (t Timestamp) Present() bool { return !t.Time.IsZero() }

// UnmarshalJSON nunca falla: una fecha inválida equivale a ausencia.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

// MarshalJSON escribe RFC 3339 o null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
