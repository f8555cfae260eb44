package models

// Coord is a zero-based grid coordinate.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns c shifted by dr rows and dc columns.
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Range represents an inclusive rectangular block of cells.
type Range struct {
	// R1 is the top row (0-based).
	R1 int `json:"r1"`
	// C1 is the left column (0-based).
	C1 int `json:"c1"`
	// R2 is the bottom row (0-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the right column (0-based, inclusive).
	C2 int `json:"c2"`
}

// NewRange returns the normalized range spanning both corners.
func NewRange(a, b Coord) Range {
	return Range{
		R1: min(a.Row, b.Row),
		C1: min(a.Col, b.Col),
		R2: max(a.Row, b.Row),
		C2: max(a.Col, b.Col),
	}
}

// SingleCell returns the 1x1 range at c.
func SingleCell(c Coord) Range {
	return Range{R1: c.Row, C1: c.Col, R2: c.Row, C2: c.Col}
}

// TopLeft returns the top-left corner.
func (r Range) TopLeft() Coord {
	return Coord{Row: r.R1, Col: r.C1}
}

// BottomRight returns the bottom-right corner.
func (r Range) BottomRight() Coord {
	return Coord{Row: r.R2, Col: r.C2}
}

// Height returns the number of rows spanned.
func (r Range) Height() int {
	return r.R2 - r.R1 + 1
}

// Width returns the number of columns spanned.
func (r Range) Width() int {
	return r.C2 - r.C1 + 1
}

// Contains reports whether c lies inside the range.
func (r Range) Contains(c Coord) bool {
	return c.Row >= r.R1 && c.Row <= r.R2 && c.Col >= r.C1 && c.Col <= r.C2
}

// MoveTo returns a range of the same size with its top-left at c.
func (r Range) MoveTo(c Coord) Range {
	return Range{R1: c.Row, C1: c.Col, R2: c.Row + r.Height() - 1, C2: c.Col + r.Width() - 1}
}

// Intersect returns the overlap of r and o; false when they are disjoint.
func (r Range) Intersect(o Range) (Range, bool) {
	out := Range{
		R1: max(r.R1, o.R1),
		C1: max(r.C1, o.C1),
		R2: min(r.R2, o.R2),
		C2: min(r.C2, o.C2),
	}
	if out.R1 > out.R2 || out.C1 > out.C2 {
		return Range{}, false
	}
	return out, true
}

// Cells returns every coordinate of the range in row-major order.
func (r Range) Cells() []Coord {
	out := make([]Coord, 0, r.Height()*r.Width())
	for row := r.R1; row <= r.R2; row++ {
		for col := r.C1; col <= r.C2; col++ {
			out = append(out, Coord{Row: row, Col: col})
		}
	}
	return out
}

// Selection is an anchor/extent pair. The anchor stays fixed while the
// end follows the pointer or the keyboard.
type Selection struct {
	Anchor Coord `json:"anchor"`
	End    Coord `json:"end"`
}

// Bounds returns the min/max bounding box of both corners.
func (s Selection) Bounds() Range {
	return NewRange(s.Anchor, s.End)
}
