package spreadsheet

import (
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/parser"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/selection"
)

// InsertTable formats a rows x cols block at the selected cell as a table:
// every cell bordered and the first row bold on a shaded background. The
// grid grows when the block does not fit. Existing values are kept.
func (e *Engine) InsertTable(rows, cols int) (models.Range, error) {
	if rows < 1 || cols < 1 {
		return models.Range{}, ErrInvalidSize
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return models.Range{}, ErrClosed
	}

	at := e.state.Selected
	table := models.Range{R1: at.Row, C1: at.Col, R2: at.Row + rows - 1, C2: at.Col + cols - 1}
	e.grow(max(e.sheet.Rows, table.R2+1), max(e.sheet.Cols, table.C2+1))

	border := e.opts.tableBorder()
	updates := make([]models.CellUpdate, 0, rows*cols)
	for _, c := range table.Cells() {
		patch := models.CellFormat{BorderTop: border, BorderRight: border, BorderBottom: border, BorderLeft: border}
		if c.Row == table.R1 {
			patch.Bold = models.Bool(true)
			patch.BackgroundColor = e.opts.tableHeaderBackground()
		}
		updates = append(updates, models.CellUpdate{Row: c.Row, Col: c.Col, Format: &patch})
	}
	e.commit("insert table", updates)
	return table, nil
}

// GrabTable starts dragging the table whose top-left is origin. Subsequent
// MouseMove and MouseUp events passed to Handle move it.
func (e *Engine) GrabTable(origin models.Coord) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	table, ok := parser.TableAt(e.tables, origin)
	if !ok {
		return ErrNoTable
	}
	e.state, _ = selection.Reduce(e.state, selection.TableGrab{Table: table}, e.sheet)
	return nil
}

// MoveTable moves a detected table so its top-left lands on to. Source
// cells outside the destination are cleared with their format replaced,
// and every cell is rewritten at its offset, each cell written once.
func (e *Engine) MoveTable(table models.Range, to models.Coord) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.moveTable(table, to)
}

func (e *Engine) moveTable(table models.Range, to models.Coord) error {
	if e.closed {
		return ErrClosed
	}
	if found, ok := parser.TableAt(e.tables, table.TopLeft()); !ok || found != table {
		return ErrNoTable
	}
	dest := table.MoveTo(to)
	if !e.sheet.InBounds(dest.R1, dest.C1) || !e.sheet.InBounds(dest.R2, dest.C2) {
		return ErrOutOfBounds
	}
	if to == table.TopLeft() {
		return nil
	}

	cells := table.Cells()
	updates := make([]models.CellUpdate, 0, 2*len(cells))
	for _, c := range cells {
		if !dest.Contains(c) {
			updates = append(updates, models.ClearUpdate(c.Row, c.Col))
		}
	}
	dr, dc := to.Row-table.R1, to.Col-table.C1
	for _, c := range cells {
		updates = append(updates, models.WriteUpdate(c.Row+dr, c.Col+dc, e.sheet.Cell(c.Row, c.Col)))
	}
	e.commit("move table", updates)
	return nil
}
