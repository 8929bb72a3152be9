package entity

import "strings"

// Product producto del catálogo del back-office.
// Weight está expresado en gramos (el recargo por kilo se aplica como weight * costPerKg / 1000).
type Product struct {
	ID          Ref       `json:"id"`
	Name        string    `json:"name"`
	Weight      Number    `json:"weight"`
	HasVariants bool      `json:"hasVariants"`
	Category    *Category `json:"category,omitempty"`
}

// Variant variante vendible de un producto; sus atributos determinan el nombre mostrado.
type Variant struct {
	ID              Ref              `json:"id"`
	Product         *Product         `json:"product,omitempty"`
	AttributeValues []AttributeValue `json:"attributeValues,omitempty"`
}

// AttributeValue valor de atributo (talla, color...) asignado a una variante.
type AttributeValue struct {
	ID    Ref    `json:"id"`
	Name  string `json:"name,omitempty"`
	Value string `json:"value"`
}

// DisplayName nombre de la variante: valores de atributo unidos con " / ".
// Vacío si el producto no maneja variantes.
func (v *Variant) DisplayName() string {
	if v == nil {
		return ""
	}
	if v.Product != nil && !v.Product.HasVariants {
		return ""
	}
	parts := make([]string, 0, len(v.AttributeValues))
	for _, av := range v.AttributeValues {
		label := strings.TrimSpace(av.Value)
		if label == "" {
			label = strings.TrimSpace(av.Name)
		}
		if label != "" {
			parts = append(parts, label)
		}
	}
	return strings.Join(parts, " / ")
}
