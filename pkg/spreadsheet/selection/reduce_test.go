package selection

import (
	"testing"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

func at(row, col int) models.Coord {
	return models.Coord{Row: row, Col: col}
}

// run feeds events in order and returns the final state and every effect.
func run(t *testing.T, s State, cells CellSource, events ...Event) (State, []Effect) {
	t.Helper()
	var effects []Effect
	for _, ev := range events {
		var eff Effect
		s, eff = Reduce(s, ev, cells)
		if eff != nil {
			effects = append(effects, eff)
		}
	}
	return s, effects
}

func TestClickAndShiftClick(t *testing.T) {
	sheet := models.NewSpreadsheet(10, 10)
	s := New(10, 10, DefaultGeometry())

	s, _ = run(t, s, sheet, Click{Cell: at(1, 1)}, Click{Cell: at(3, 2), Shift: true})
	if s.Range == nil {
		t.Fatal("Expected a selection range after shift-click")
	}
	if s.Range.Anchor != at(1, 1) || s.Range.End != at(3, 2) || s.Selected != at(3, 2) {
		t.Errorf("unexpected selection %+v, selected %v", *s.Range, s.Selected)
	}
	if got := s.Active(); got != (models.Range{R1: 1, C1: 1, R2: 3, C2: 2}) {
		t.Errorf("Active() = %v", got)
	}

	s, _ = run(t, s, sheet, Click{Cell: at(5, 5)})
	if s.Range != nil || s.Selected != at(5, 5) {
		t.Errorf("plain click must clear the range, got %+v", s)
	}
}

func TestArrowKeys(t *testing.T) {
	sheet := models.NewSpreadsheet(3, 3)
	s := New(3, 3, DefaultGeometry())

	tests := []struct {
		name     string
		key      Key
		selected models.Coord
		ranged   bool
	}{
		{"up clamps at top", Key{Name: KeyUp}, at(0, 0), false},
		{"down", Key{Name: KeyDown}, at(1, 0), false},
		{"shift right extends", Key{Name: KeyRight, Shift: true}, at(1, 1), true},
		{"shift right again", Key{Name: KeyRight, Shift: true}, at(1, 2), true},
		{"shift right clamps", Key{Name: KeyRight, Shift: true}, at(1, 2), true},
		{"plain left clears range", Key{Name: KeyLeft}, at(1, 1), false},
	}
	for _, tt := range tests {
		s, _ = Reduce(s, tt.key, sheet)
		if s.Selected != tt.selected {
			t.Errorf("%s: selected = %v, expected %v", tt.name, s.Selected, tt.selected)
		}
		if (s.Range != nil) != tt.ranged {
			t.Errorf("%s: range = %v, expected ranged=%v", tt.name, s.Range, tt.ranged)
		}
	}
}

func TestShiftArrowAnchorsOnPreviousCell(t *testing.T) {
	sheet := models.NewSpreadsheet(5, 5)
	s := New(5, 5, DefaultGeometry())
	s, _ = run(t, s, sheet, Click{Cell: at(2, 2)}, Key{Name: KeyDown, Shift: true}, Key{Name: KeyDown, Shift: true})
	if s.Range.Anchor != at(2, 2) || s.Range.End != at(4, 2) {
		t.Errorf("unexpected range %+v", *s.Range)
	}
}

func TestDragSelection(t *testing.T) {
	sheet := models.NewSpreadsheet(10, 10)
	g := DefaultGeometry()
	g.OriginX, g.OriginY = 50, 20
	s := New(10, 10, g)

	// default tracks are 100x32
	s, _ = run(t, s, sheet,
		MouseDown{X: 60, Y: 30},
		MouseMove{X: 260, Y: 90},
	)
	if s.Drag != DragRange {
		t.Fatalf("Expected a range drag, got %v", s.Drag)
	}
	if s.Range == nil || s.Range.Anchor != at(0, 0) || s.Range.End != at(2, 2) {
		t.Fatalf("unexpected range %v", s.Range)
	}

	s, _ = run(t, s, sheet, MouseUp{X: 5000, Y: 5000})
	if s.Drag != DragNone {
		t.Error("MouseUp must end the drag")
	}
	if s.Range.End != at(9, 9) {
		t.Errorf("drag past the grid must clamp, got %v", s.Range.End)
	}

	s, _ = run(t, s, sheet, MouseDown{X: 10, Y: 10})
	if s.Drag != DragNone {
		t.Error("MouseDown outside the grid must not start a drag")
	}
}

func TestCellAtCustomTracks(t *testing.T) {
	g := Geometry{DefaultWidth: 100, DefaultHeight: 30, ColWidths: map[int]int{0: 50}, RowHeights: map[int]int{1: 60}}
	tests := []struct {
		x, y   int
		cell   models.Coord
		inside bool
	}{
		{0, 0, at(0, 0), true},
		{49, 29, at(0, 0), true},
		{50, 30, at(1, 1), true},
		{149, 89, at(1, 1), true},
		{150, 90, at(2, 2), true},
		{-1, 10, at(0, 0), false},
		{10000, 10, at(0, 3), false},
	}
	for _, tt := range tests {
		cell, inside := g.CellAt(tt.x, tt.y, 3, 4)
		if cell != tt.cell || inside != tt.inside {
			t.Errorf("CellAt(%d, %d) = %v, %v; expected %v, %v", tt.x, tt.y, cell, inside, tt.cell, tt.inside)
		}
	}
}

func TestEditSeedsFromFormula(t *testing.T) {
	sheet := models.NewSpreadsheet(5, 5)
	sheet.Set(0, 0, models.Cell{Value: "3", Formula: "=1+2"})
	sheet.Set(1, 0, models.Cell{Value: "hello"})
	s := New(5, 5, DefaultGeometry())

	s, _ = run(t, s, sheet, DoubleClick{Cell: at(0, 0)})
	if !s.IsEditing() || s.Buffer != "=1+2" {
		t.Errorf("Expected formula seed, got editing=%v buffer=%q", s.IsEditing(), s.Buffer)
	}

	s, effects := run(t, s, sheet, Key{Name: KeyEscape})
	if s.IsEditing() || len(effects) != 0 {
		t.Errorf("Escape must discard without committing, got %v", effects)
	}

	s, _ = run(t, s, sheet, Click{Cell: at(1, 0)}, Key{Rune: '!'})
	if s.Buffer != "hello!" {
		t.Errorf("Expected value seed plus keystroke, got %q", s.Buffer)
	}
}

func TestCommitKeys(t *testing.T) {
	sheet := models.NewSpreadsheet(5, 5)
	s := New(5, 5, DefaultGeometry())

	s, effects := run(t, s, sheet, Click{Cell: at(1, 1)}, Key{Rune: '4'}, Key{Rune: '2'}, Key{Name: KeyEnter})
	if len(effects) != 1 {
		t.Fatalf("Expected one commit, got %v", effects)
	}
	if c := effects[0].(Commit); c.Cell != at(1, 1) || c.Text != "42" {
		t.Errorf("unexpected commit %+v", c)
	}
	if s.Selected != at(2, 1) || s.IsEditing() {
		t.Errorf("Enter must move down and close the editor, got %v editing=%v", s.Selected, s.IsEditing())
	}

	s, effects = run(t, s, sheet, Key{Rune: 'x'}, Key{Name: KeyTab})
	if len(effects) != 1 || effects[0].(Commit).Text != "x" {
		t.Errorf("unexpected effects %v", effects)
	}
	if s.Selected != at(2, 2) {
		t.Errorf("Tab must move right, got %v", s.Selected)
	}
}

func TestReferenceInsertion(t *testing.T) {
	sheet := models.NewSpreadsheet(5, 5)
	s := New(5, 5, DefaultGeometry())

	s, effects := run(t, s, sheet,
		Click{Cell: at(2, 0)},
		Key{Rune: '='},
		Click{Cell: at(0, 1)},
		Key{Rune: '+'},
		Click{Cell: at(0, 2)},
	)
	if len(effects) != 0 {
		t.Fatalf("reference clicks must not commit, got %v", effects)
	}
	if s.Buffer != "=B1+C1" {
		t.Errorf("Expected '=B1+C1', got %q", s.Buffer)
	}
	if s.Highlight == nil || *s.Highlight != at(0, 2) {
		t.Errorf("Expected C1 highlighted, got %v", s.Highlight)
	}
	if s.Selected != at(2, 0) {
		t.Errorf("selection must stay on the edited cell, got %v", s.Selected)
	}

	// buffer no longer expects a reference: a click commits and moves
	s, effects = run(t, s, sheet, Click{Cell: at(4, 4)})
	if len(effects) != 1 || effects[0].(Commit).Text != "=B1+C1" {
		t.Errorf("unexpected effects %v", effects)
	}
	if s.Selected != at(4, 4) || s.IsEditing() {
		t.Errorf("unexpected state after commit click: %+v", s)
	}
}

func TestBlurGrace(t *testing.T) {
	sheet := models.NewSpreadsheet(5, 5)
	s := New(5, 5, DefaultGeometry())

	s, effects := run(t, s, sheet, Key{Rune: '='}, Blur{})
	if len(effects) != 1 {
		t.Fatalf("Expected ScheduleBlur, got %v", effects)
	}
	if _, ok := effects[0].(ScheduleBlur); !ok {
		t.Errorf("Expected ScheduleBlur, got %T", effects[0])
	}

	// a reference click inside the grace delay cancels the blur commit
	s, effects = run(t, s, sheet, Click{Cell: at(3, 3)}, BlurElapsed{})
	if len(effects) != 0 || !s.IsEditing() || s.Buffer != "=D4" {
		t.Errorf("blur must be cancelled, got effects=%v buffer=%q", effects, s.Buffer)
	}

	s, effects = run(t, s, sheet, Blur{}, BlurElapsed{})
	if len(effects) != 2 {
		t.Fatalf("Expected ScheduleBlur and Commit, got %v", effects)
	}
	if c, ok := effects[1].(Commit); !ok || c.Text != "=D4" || c.Cell != at(0, 0) {
		t.Errorf("unexpected commit %+v", effects[1])
	}
	if s.IsEditing() {
		t.Error("editor must be closed after the blur commit")
	}
}

func TestShortcuts(t *testing.T) {
	sheet := models.NewSpreadsheet(2, 2)
	s := New(2, 2, DefaultGeometry())
	tests := []struct {
		key    Key
		effect Effect
	}{
		{Key{Rune: 'c', Ctrl: true}, Copy{}},
		{Key{Rune: 'V', Ctrl: true}, Paste{}},
		{Key{Rune: 'b', Ctrl: true}, ToggleBold{}},
		{Key{Rune: 'i', Ctrl: true}, ToggleItalic{}},
		{Key{Rune: 'e', Ctrl: true, Shift: true}, Align{Align: models.AlignCenter}},
		{Key{Name: KeyDelete}, Delete{}},
		{Key{Name: KeyBackspace}, Delete{}},
	}
	for _, tt := range tests {
		_, eff := Reduce(s, tt.key, sheet)
		if eff != tt.effect {
			t.Errorf("%+v: effect = %#v, expected %#v", tt.key, eff, tt.effect)
		}
	}
}

func TestTableDrag(t *testing.T) {
	sheet := models.NewSpreadsheet(6, 6)
	s := New(6, 6, DefaultGeometry())
	table := models.Range{R1: 0, C1: 0, R2: 1, C2: 2}

	s, _ = run(t, s, sheet, TableGrab{Table: table}, MouseDown{X: 5, Y: 5}, MouseMove{X: 150, Y: 100})
	if s.Drag != DragTable {
		t.Fatalf("table drag must take precedence, got %v", s.Drag)
	}
	if _, dest, _ := s.TableDrag(); dest != at(3, 1) {
		t.Errorf("dest = %v, expected B4", dest)
	}
	if s.Range != nil {
		t.Error("table drag must not touch the selection range")
	}

	s, effects := run(t, s, sheet, MouseUp{X: 10000, Y: 10000})
	if len(effects) != 1 {
		t.Fatalf("Expected a MoveTable effect, got %v", effects)
	}
	mv := effects[0].(MoveTable)
	if mv.Table != table || mv.To != at(4, 3) {
		t.Errorf("unexpected move %+v; footprint must stay in bounds", mv)
	}

	_, effects = run(t, s, sheet, TableGrab{Table: table}, MouseUp{X: 1, Y: 1})
	if len(effects) != 0 {
		t.Errorf("dropping on the source must not move, got %v", effects)
	}
}

func TestResizeGesture(t *testing.T) {
	sheet := models.NewSpreadsheet(3, 3)
	s := New(3, 3, DefaultGeometry())

	s, effects := run(t, s, sheet,
		ResizeStart{Axis: AxisColumn, Index: 1, Pos: 200},
		MouseMove{X: 260},
		MouseUp{X: 250},
	)
	if got := s.Geometry.ColWidth(1); got != 150 {
		t.Errorf("ColWidth(1) = %d, expected 150", got)
	}
	if len(effects) != 1 || effects[0] != (TrackResized{Axis: AxisColumn, Index: 1, Size: 150}) {
		t.Errorf("unexpected effects %v", effects)
	}

	s, _ = run(t, s, sheet, ResizeStart{Axis: AxisRow, Index: 0, Pos: 32}, MouseUp{Y: -500})
	if got := s.Geometry.RowHeight(0); got != MinRowHeight {
		t.Errorf("RowHeight(0) = %d, expected the minimum %d", got, MinRowHeight)
	}
}

func TestResizeClampsSelection(t *testing.T) {
	sheet := models.NewSpreadsheet(10, 10)
	s := New(10, 10, DefaultGeometry())
	s, _ = run(t, s, sheet, Click{Cell: at(8, 8)}, Resize{Rows: 20, Cols: 20})
	if s.Selected != at(8, 8) || s.Rows != 20 {
		t.Errorf("growing must keep the selection, got %+v", s)
	}
}
