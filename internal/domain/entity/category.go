package entity

// Category categoría de gasto tal como se ofrece al cargar una dépense: sugerida, ya usada o ambas.
type Category struct {
	Name      string
	Suggested bool
	Uses      int // número de dépenses registradas con esta categoría
}
