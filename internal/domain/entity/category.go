package entity

// UnknownGroup etiqueta usada cuando una venta no tiene canal o un producto no tiene categoría.
const UnknownGroup = "Unknown"

// Category categoría de productos del catálogo.
type Category struct {
	ID   Ref    `json:"id"`
	Name string `json:"name"`
}

// Channel canal de venta online (marketplace, tienda propia, redes sociales...).
type Channel struct {
	ID   Ref    `json:"id"`
	Name string `json:"name"`
}
