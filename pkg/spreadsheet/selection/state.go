// Package selection holds the grid's interaction state: the selected cell,
// the selection range, the cell being edited and the active mouse gesture.
// Events are applied by Reduce, a pure function that never touches the
// Cell Store; anything that must write is returned as an Effect.
package selection

import (
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

// DragKind identifies the active mouse gesture. Only one runs at a time.
type DragKind int

const (
	DragNone DragKind = iota
	DragRange
	DragResize
	DragTable
)

// Axis selects columns or rows for a resize gesture.
type Axis int

const (
	AxisColumn Axis = iota
	AxisRow
)

// State is the interaction state of one open grid view.
type State struct {
	Rows int
	Cols int

	Selected models.Coord
	Range    *models.Selection
	Editing  *models.Coord
	Buffer   string

	// Highlight marks the cell whose reference was last inserted into a
	// formula being edited.
	Highlight *models.Coord
	// PendingBlur is set while a blur commit waits out its grace delay.
	PendingBlur bool

	Geometry Geometry

	Drag       DragKind
	dragAnchor models.Coord
	resize     resizeDrag
	table      tableDrag
}

type resizeDrag struct {
	axis  Axis
	index int
	start int
	size  int
}

type tableDrag struct {
	src  models.Range
	dest models.Coord
}

// New returns the initial state for a rows x cols grid with A1 selected.
func New(rows, cols int, g Geometry) State {
	return State{Rows: max(rows, 1), Cols: max(cols, 1), Geometry: g}
}

// Active returns the range edits apply to: the selection range when one
// exists, else the selected cell.
func (s State) Active() models.Range {
	if s.Range != nil {
		return s.Range.Bounds()
	}
	return models.SingleCell(s.Selected)
}

// Anchor returns the corner that toggles are keyed on.
func (s State) Anchor() models.Coord {
	if s.Range != nil {
		return s.Range.Anchor
	}
	return s.Selected
}

// IsEditing reports whether a cell is open for editing.
func (s State) IsEditing() bool {
	return s.Editing != nil
}

// TableDrag returns the table being dragged and its current destination
// top-left.
func (s State) TableDrag() (models.Range, models.Coord, bool) {
	if s.Drag != DragTable {
		return models.Range{}, models.Coord{}, false
	}
	return s.table.src, s.table.dest, true
}

func (s State) clamp(c models.Coord) models.Coord {
	c.Row = min(max(c.Row, 0), s.Rows-1)
	c.Col = min(max(c.Col, 0), s.Cols-1)
	return c
}

func ptr(c models.Coord) *models.Coord {
	return &c
}
