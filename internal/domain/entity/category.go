package entity

// Categorías vigentes del catálogo.
const (
	CategoryBebidas        = "bebidas"
	CategoryCervezas       = "cervezas"
	CategoryLiquidos       = "liquidos"
	CategorySnacks         = "snacks"
	CategoryChocolatesCafe = "chocolates_cafe"
	CategoryOtros          = "otros"
)

// Categorías de versiones anteriores; siguen siendo válidas para datos existentes.
const (
	CategoryBebidasCalientes = "bebidas-calientes"
	CategoryBebidasFrias     = "bebidas-frias"
	CategoryPostres          = "postres"
)

var validCategories = map[string]bool{
	CategoryBebidas:          true,
	CategoryCervezas:         true,
	CategoryLiquidos:         true,
	CategorySnacks:           true,
	CategoryChocolatesCafe:   true,
	CategoryOtros:            true,
	CategoryBebidasCalientes: true,
	CategoryBebidasFrias:     true,
	CategoryPostres:          true,
}

// IsValidCategory indica si la categoría pertenece al conjunto fijo.
func IsValidCategory(c string) bool {
	return validCategories[c]
}
