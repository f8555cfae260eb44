package selection

import (
	"maps"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/parser"
)

// Minimum track sizes reachable by a resize gesture, in pixels.
const (
	MinColumnWidth = 40
	MinRowHeight   = 20
)

// Geometry describes where the grid is rendered and how wide each column
// and how tall each row is. Tracks missing from the maps use the defaults.
type Geometry struct {
	OriginX       int
	OriginY       int
	DefaultWidth  int
	DefaultHeight int
	ColWidths     map[int]int
	RowHeights    map[int]int
}

// DefaultGeometry returns a grid rendered at (0, 0) with default track sizes.
func DefaultGeometry() Geometry {
	return Geometry{
		DefaultWidth:  parser.DefaultColumnWidth,
		DefaultHeight: parser.DefaultRowHeight,
	}
}

// ColWidth returns the rendered width of column col.
func (g Geometry) ColWidth(col int) int {
	if w, ok := g.ColWidths[col]; ok {
		return w
	}
	if g.DefaultWidth > 0 {
		return g.DefaultWidth
	}
	return parser.DefaultColumnWidth
}

// RowHeight returns the rendered height of row row.
func (g Geometry) RowHeight(row int) int {
	if h, ok := g.RowHeights[row]; ok {
		return h
	}
	if g.DefaultHeight > 0 {
		return g.DefaultHeight
	}
	return parser.DefaultRowHeight
}

// CellAt maps a pixel position to the cell under it by accumulating track
// sizes from the origin. The coordinate is always clamped into a rows x cols
// grid; inside reports whether the point actually lies on the grid.
func (g Geometry) CellAt(x, y, rows, cols int) (c models.Coord, inside bool) {
	col, okX := locate(x, g.OriginX, cols, g.ColWidth)
	row, okY := locate(y, g.OriginY, rows, g.RowHeight)
	return models.Coord{Row: row, Col: col}, okX && okY
}

// WithColWidth returns a copy of g with column col set to width.
func (g Geometry) WithColWidth(col, width int) Geometry {
	g.ColWidths = maps.Clone(g.ColWidths)
	if g.ColWidths == nil {
		g.ColWidths = make(map[int]int)
	}
	g.ColWidths[col] = max(width, MinColumnWidth)
	return g
}

// WithRowHeight returns a copy of g with row row set to height.
func (g Geometry) WithRowHeight(row, height int) Geometry {
	g.RowHeights = maps.Clone(g.RowHeights)
	if g.RowHeights == nil {
		g.RowHeights = make(map[int]int)
	}
	g.RowHeights[row] = max(height, MinRowHeight)
	return g
}

func locate(pos, origin, n int, size func(int) int) (int, bool) {
	if pos < origin {
		return 0, false
	}
	edge := origin
	for i := 0; i < n; i++ {
		edge += size(i)
		if pos < edge {
			return i, true
		}
	}
	return max(n-1, 0), false
}
