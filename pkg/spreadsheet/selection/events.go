package selection

import "github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"

// Event is an input delivered to Reduce.
type Event interface {
	event()
}

// Click selects a cell. With Shift it extends the selection range instead.
type Click struct {
	Cell  models.Coord
	Shift bool
}

// DoubleClick opens a cell for editing.
type DoubleClick struct {
	Cell models.Coord
}

// Named keys understood by Reduce.
const (
	KeyUp        = "ArrowUp"
	KeyDown      = "ArrowDown"
	KeyLeft      = "ArrowLeft"
	KeyRight     = "ArrowRight"
	KeyEnter     = "Enter"
	KeyTab       = "Tab"
	KeyEscape    = "Escape"
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
)

// Key is a keystroke: either a named key or a printable rune.
type Key struct {
	Name  string
	Rune  rune
	Shift bool
	Ctrl  bool
}

// Input replaces the edit buffer with the editor's current text.
type Input struct {
	Text string
}

// MouseDown starts a range drag on the cell under (X, Y).
type MouseDown struct {
	X, Y int
}

// MouseMove continues the active gesture.
type MouseMove struct {
	X, Y int
}

// MouseUp ends the active gesture.
type MouseUp struct {
	X, Y int
}

// ResizeStart grabs the trailing edge of a column or row at pixel Pos.
type ResizeStart struct {
	Axis  Axis
	Index int
	Pos   int
}

// TableGrab grabs the drag handle of a detected table.
type TableGrab struct {
	Table models.Range
}

// Blur reports that the editor lost focus.
type Blur struct{}

// BlurElapsed reports that the blur grace delay has passed.
type BlurElapsed struct{}

// Resize reports new grid dimensions.
type Resize struct {
	Rows, Cols int
}

func (Click) event()       {}
func (DoubleClick) event() {}
func (Key) event()         {}
func (Input) event()       {}
func (MouseDown) event()   {}
func (MouseMove) event()   {}
func (MouseUp) event()     {}
func (ResizeStart) event() {}
func (TableGrab) event()   {}
func (Blur) event()        {}
func (BlurElapsed) event() {}
func (Resize) event()      {}

// Effect is work Reduce asks its caller to perform.
type Effect interface {
	effect()
}

// Commit saves Text into Cell.
type Commit struct {
	Cell models.Coord
	Text string
}

// ScheduleBlur asks the caller to deliver BlurElapsed after the grace delay.
type ScheduleBlur struct{}

// Copy, Paste, Delete, ToggleBold and ToggleItalic act on the active range.
type (
	Copy         struct{}
	Paste        struct{}
	Delete       struct{}
	ToggleBold   struct{}
	ToggleItalic struct{}
)

// Align sets the horizontal alignment of the active range.
type Align struct {
	Align models.Alignment
}

// MoveTable relocates a table so that its top-left lands on To.
type MoveTable struct {
	Table models.Range
	To    models.Coord
}

// TrackResized reports a finished column or row resize.
type TrackResized struct {
	Axis  Axis
	Index int
	Size  int
}

func (Commit) effect()       {}
func (ScheduleBlur) effect() {}
func (Copy) effect()         {}
func (Paste) effect()        {}
func (Delete) effect()       {}
func (ToggleBold) effect()   {}
func (ToggleItalic) effect() {}
func (Align) effect()        {}
func (MoveTable) effect()    {}
func (TrackResized) effect() {}
