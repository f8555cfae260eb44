package selection

import (
	"unicode"
	"unicode/utf8"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/cellref"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/formula"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

// CellSource gives read access to committed cells, used to seed the editor.
type CellSource interface {
	Cell(row, col int) models.Cell
}

// Reduce applies ev to s and returns the next state together with the
// effect the caller has to carry out, or nil.
func Reduce(s State, ev Event, cells CellSource) (State, Effect) {
	switch e := ev.(type) {
	case Click:
		return s.click(s.clamp(e.Cell), e.Shift)
	case DoubleClick:
		if s.Editing != nil {
			return s.click(s.clamp(e.Cell), false)
		}
		return s.open(s.clamp(e.Cell), cells, ""), nil
	case Key:
		if s.Editing != nil {
			return s.editKey(e)
		}
		return s.navKey(e, cells)
	case Input:
		if s.Editing != nil {
			s.Buffer = e.Text
		}
		return s, nil
	case MouseDown:
		return s.mouseDown(e.X, e.Y), nil
	case MouseMove:
		return s.mouseMove(e.X, e.Y), nil
	case MouseUp:
		return s.mouseUp(e.X, e.Y)
	case ResizeStart:
		if s.Drag == DragTable {
			return s, nil
		}
		size := s.Geometry.ColWidth(e.Index)
		if e.Axis == AxisRow {
			size = s.Geometry.RowHeight(e.Index)
		}
		s.Drag = DragResize
		s.resize = resizeDrag{axis: e.Axis, index: e.Index, start: e.Pos, size: size}
		return s, nil
	case TableGrab:
		s.Drag = DragTable
		s.table = tableDrag{src: e.Table, dest: e.Table.TopLeft()}
		return s, nil
	case Blur:
		if s.Editing == nil {
			return s, nil
		}
		s.PendingBlur = true
		return s, ScheduleBlur{}
	case BlurElapsed:
		if !s.PendingBlur || s.Editing == nil {
			s.PendingBlur = false
			return s, nil
		}
		commit := Commit{Cell: *s.Editing, Text: s.Buffer}
		return s.closeEdit(), commit
	case Resize:
		return s.resized(e.Rows, e.Cols), nil
	}
	return s, nil
}

func (s State) click(cell models.Coord, shift bool) (State, Effect) {
	if s.Editing == nil {
		return s.selectCell(cell, shift), nil
	}
	if *s.Editing == cell {
		return s, nil
	}
	if formula.ExpectsReference(s.Buffer) {
		s.Buffer += cellref.Format(cell)
		s.Highlight = ptr(cell)
		s.PendingBlur = false
		return s, nil
	}
	commit := Commit{Cell: *s.Editing, Text: s.Buffer}
	return s.closeEdit().selectCell(cell, shift), commit
}

func (s State) selectCell(cell models.Coord, shift bool) State {
	if shift {
		return s.extend(cell)
	}
	s.Selected = cell
	s.Range = nil
	return s
}

// extend moves the range end to cell, anchoring a new range on the
// previously selected cell when none exists.
func (s State) extend(cell models.Coord) State {
	anchor := s.Selected
	if s.Range != nil {
		anchor = s.Range.Anchor
	}
	s.Range = &models.Selection{Anchor: anchor, End: cell}
	s.Selected = cell
	return s
}

func (s State) open(cell models.Coord, cells CellSource, typed string) State {
	s.Selected = cell
	s.Range = nil
	s.Editing = ptr(cell)
	s.Buffer = cells.Cell(cell.Row, cell.Col).Input() + typed
	s.Highlight = nil
	s.PendingBlur = false
	return s
}

func (s State) closeEdit() State {
	s.Editing = nil
	s.Buffer = ""
	s.Highlight = nil
	s.PendingBlur = false
	return s
}

func (s State) editKey(k Key) (State, Effect) {
	editing := *s.Editing
	switch k.Name {
	case KeyEnter, KeyTab:
		commit := Commit{Cell: editing, Text: s.Buffer}
		next := editing.Add(1, 0)
		if k.Name == KeyTab {
			next = editing.Add(0, 1)
		}
		return s.closeEdit().selectCell(s.clamp(next), false), commit
	case KeyEscape:
		return s.closeEdit(), nil
	case KeyBackspace:
		if _, size := utf8.DecodeLastRuneInString(s.Buffer); size > 0 {
			s.Buffer = s.Buffer[:len(s.Buffer)-size]
		}
		return s, nil
	}
	if k.Rune != 0 && !k.Ctrl && unicode.IsPrint(k.Rune) {
		s.Buffer += string(k.Rune)
	}
	return s, nil
}

func (s State) navKey(k Key, cells CellSource) (State, Effect) {
	if k.Ctrl {
		return s, shortcut(k)
	}
	switch k.Name {
	case KeyUp:
		return s.arrow(-1, 0, k.Shift), nil
	case KeyDown:
		return s.arrow(1, 0, k.Shift), nil
	case KeyLeft:
		return s.arrow(0, -1, k.Shift), nil
	case KeyRight:
		return s.arrow(0, 1, k.Shift), nil
	case KeyTab:
		return s.arrow(0, 1, false), nil
	case KeyEnter:
		return s.open(s.Selected, cells, ""), nil
	case KeyDelete, KeyBackspace:
		return s, Delete{}
	case KeyEscape:
		s.Range = nil
		return s, nil
	}
	if k.Rune != 0 && unicode.IsPrint(k.Rune) {
		return s.open(s.Selected, cells, string(k.Rune)), nil
	}
	return s, nil
}

func shortcut(k Key) Effect {
	switch unicode.ToLower(k.Rune) {
	case 'c':
		return Copy{}
	case 'v':
		return Paste{}
	case 'b':
		return ToggleBold{}
	case 'i':
		return ToggleItalic{}
	case 'l':
		return Align{Align: models.AlignLeft}
	case 'e':
		return Align{Align: models.AlignCenter}
	case 'r':
		return Align{Align: models.AlignRight}
	}
	return nil
}

func (s State) arrow(dr, dc int, shift bool) State {
	if !shift {
		return s.selectCell(s.clamp(s.Selected.Add(dr, dc)), false)
	}
	from := s.Selected
	if s.Range != nil {
		from = s.Range.End
	}
	return s.extend(s.clamp(from.Add(dr, dc)))
}

func (s State) mouseDown(x, y int) State {
	if s.Drag != DragNone || s.Editing != nil {
		return s
	}
	cell, inside := s.Geometry.CellAt(x, y, s.Rows, s.Cols)
	if !inside {
		return s
	}
	s.Drag = DragRange
	s.dragAnchor = cell
	s.Selected = cell
	s.Range = nil
	return s
}

func (s State) mouseMove(x, y int) State {
	switch s.Drag {
	case DragRange:
		cell, _ := s.Geometry.CellAt(x, y, s.Rows, s.Cols)
		if cell == s.dragAnchor {
			s.Selected = cell
			s.Range = nil
			return s
		}
		s.Range = &models.Selection{Anchor: s.dragAnchor, End: cell}
		s.Selected = cell
	case DragResize:
		pos := x
		if s.resize.axis == AxisRow {
			pos = y
		}
		size := s.resize.size + pos - s.resize.start
		if s.resize.axis == AxisRow {
			s.Geometry = s.Geometry.WithRowHeight(s.resize.index, size)
		} else {
			s.Geometry = s.Geometry.WithColWidth(s.resize.index, size)
		}
	case DragTable:
		cell, _ := s.Geometry.CellAt(x, y, s.Rows, s.Cols)
		s.table.dest = s.fitTable(s.table.src, cell)
	}
	return s
}

func (s State) mouseUp(x, y int) (State, Effect) {
	s = s.mouseMove(x, y)
	drag := s.Drag
	s.Drag = DragNone
	switch drag {
	case DragResize:
		size := s.Geometry.ColWidth(s.resize.index)
		if s.resize.axis == AxisRow {
			size = s.Geometry.RowHeight(s.resize.index)
		}
		return s, TrackResized{Axis: s.resize.axis, Index: s.resize.index, Size: size}
	case DragTable:
		if s.table.dest != s.table.src.TopLeft() {
			return s, MoveTable{Table: s.table.src, To: s.table.dest}
		}
	}
	return s, nil
}

// fitTable clamps a destination top-left so the whole table stays inside
// the grid.
func (s State) fitTable(t models.Range, to models.Coord) models.Coord {
	to.Row = max(min(to.Row, s.Rows-t.Height()), 0)
	to.Col = max(min(to.Col, s.Cols-t.Width()), 0)
	return to
}

func (s State) resized(rows, cols int) State {
	s.Rows = max(rows, 1)
	s.Cols = max(cols, 1)
	s.Selected = s.clamp(s.Selected)
	if s.Range != nil {
		s.Range = &models.Selection{Anchor: s.clamp(s.Range.Anchor), End: s.clamp(s.Range.End)}
	}
	if s.Editing != nil && *s.Editing != s.clamp(*s.Editing) {
		s = s.closeEdit()
	}
	return s
}
