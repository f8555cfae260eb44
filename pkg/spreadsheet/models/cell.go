// Package models defines the data structures of a board spreadsheet.
package models

// Alignment is the horizontal alignment of a cell's text.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// NumberFormat controls how a stored value is rendered. It never changes
// the stored value itself.
type NumberFormat string

const (
	NumberFormatText     NumberFormat = "text"
	NumberFormatNumber   NumberFormat = "number"
	NumberFormatCurrency NumberFormat = "currency"
	NumberFormatPercent  NumberFormat = "percent"
)

// BorderNone explicitly marks a border edge as absent.
const BorderNone = "none"

// Cell represents the content of one grid position.
type Cell struct {
	// Value is the displayed text. For formula cells it holds the last
	// evaluation result or an error marker.
	Value string `json:"value"`
	// Formula is the raw user input, starting with "=" when present.
	Formula string `json:"formula,omitempty"`
	// Format is the visual and semantic formatting (optional).
	Format *CellFormat `json:"format,omitempty"`
}

// HasFormula reports whether the cell carries a formula.
func (c Cell) HasFormula() bool {
	return c.Formula != ""
}

// Input returns what an editor should be seeded with: the formula when
// present, else the value.
func (c Cell) Input() string {
	if c.HasFormula() {
		return c.Formula
	}
	return c.Value
}

// CellFormat holds presentation and semantic-type metadata.
type CellFormat struct {
	// Bold is nil when never set, so a patch can explicitly set false.
	Bold *bool `json:"bold,omitempty"`
	// Italic follows the same rules as Bold.
	Italic *bool `json:"italic,omitempty"`
	// Align is the horizontal alignment.
	Align Alignment `json:"align,omitempty"`
	// BackgroundColor is a CSS color, e.g. "#f3f4f6".
	BackgroundColor string `json:"backgroundColor,omitempty"`
	// TextColor is a CSS color.
	TextColor string `json:"textColor,omitempty"`
	// FontSize is in pixels (0 means default).
	FontSize int `json:"fontSize,omitempty"`
	// BorderTop is a CSS-like border spec such as "1px solid #d1d5db".
	BorderTop    string `json:"borderTop,omitempty"`
	BorderRight  string `json:"borderRight,omitempty"`
	BorderBottom string `json:"borderBottom,omitempty"`
	BorderLeft   string `json:"borderLeft,omitempty"`
	// NumberFormat selects display-only rendering of the value.
	NumberFormat NumberFormat `json:"numberFormat,omitempty"`
}

// IsBold reports whether bold is set and true.
func (f *CellFormat) IsBold() bool {
	return f != nil && f.Bold != nil && *f.Bold
}

// IsItalic reports whether italic is set and true.
func (f *CellFormat) IsItalic() bool {
	return f != nil && f.Italic != nil && *f.Italic
}

// HasBorder reports whether any of the four edges is set.
func (f *CellFormat) HasBorder() bool {
	if f == nil {
		return false
	}
	return BorderSet(f.BorderTop) || BorderSet(f.BorderRight) ||
		BorderSet(f.BorderBottom) || BorderSet(f.BorderLeft)
}

// HasBackground reports whether a background color is set.
func (f *CellFormat) HasBackground() bool {
	return f != nil && f.BackgroundColor != "" && f.BackgroundColor != "transparent"
}

// BorderSet reports whether a border spec describes a visible edge.
func BorderSet(spec string) bool {
	return spec != "" && spec != BorderNone
}

// Bool returns a pointer to b, for building format patches.
func Bool(b bool) *bool {
	return &b
}

// String returns a pointer to s, for building updates.
func String(s string) *string {
	return &s
}
