package domain

// ModuleType is a split template: the number of rows and columns a leaf is
// divided into when the module is dropped on it.
type ModuleType struct {
	ID    string `json:"id" yaml:"id"`
	Rows  int    `json:"rows" yaml:"rows"`
	Cols  int    `json:"cols" yaml:"cols"`
	Label string `json:"label" yaml:"label"`
}

// Cells returns the number of children a split with this module produces.
func (m ModuleType) Cells() int {
	return m.Rows * m.Cols
}

// Valid reports whether the module describes a non-empty grid.
func (m ModuleType) Valid() bool {
	return m.Rows > 0 && m.Cols > 0
}

// Catalog module IDs.
const (
	ModuleDoubleColumn        = "2x1"
	ModuleDoubleRow           = "1x2"
	ModuleGrid                = "2x2"
	ModuleTripleColumn        = "3x1"
	ModuleTripleRow           = "1x3"
	ModuleHeaderContentFooter = "header-content-footer"
)

// catalog is ordered; pickers show it as-is.
var catalog = []ModuleType{
	{ID: ModuleDoubleColumn, Rows: 2, Cols: 1, Label: "Double Column"},
	{ID: ModuleDoubleRow, Rows: 1, Cols: 2, Label: "Double Row"},
	{ID: ModuleGrid, Rows: 2, Cols: 2, Label: "Grid"},
	{ID: ModuleTripleColumn, Rows: 3, Cols: 1, Label: "Triple Column"},
	{ID: ModuleTripleRow, Rows: 1, Cols: 3, Label: "Triple Row"},
	// Same shape as 1x3; only the label carries the header/content/footer meaning.
	{ID: ModuleHeaderContentFooter, Rows: 1, Cols: 3, Label: "Header / Content / Footer"},
}

// Catalog returns the recognized module presets in a stable order.
// The returned slice is a copy and may be modified by the caller.
func Catalog() []ModuleType {
	out := make([]ModuleType, len(catalog))
	copy(out, catalog)
	return out
}

// LookupModule finds a preset by ID.
func LookupModule(id string) (ModuleType, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return ModuleType{}, false
}
