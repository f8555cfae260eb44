package spreadsheet

import (
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

// clipboard holds either a single copied coordinate, read again at paste
// time, or a block of cloned cells relative to the copied top-left.
type clipboard struct {
	source  *models.Coord
	entries []clipEntry
}

type clipEntry struct {
	dr, dc int
	cell   models.Cell
}

func (c clipboard) empty() bool {
	return c.source == nil && len(c.entries) == 0
}

// Copy copies the active range (or the selected cell).
func (e *Engine) Copy() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.copyRange(e.state.Active())
	return nil
}

func (e *Engine) copyRange(r models.Range) {
	if r.Height() == 1 && r.Width() == 1 {
		src := r.TopLeft()
		e.clip = clipboard{source: &src}
		return
	}
	entries := make([]clipEntry, 0, r.Height()*r.Width())
	for _, c := range r.Cells() {
		entries = append(entries, clipEntry{
			dr:   c.Row - r.R1,
			dc:   c.Col - r.C1,
			cell: models.CloneCell(e.sheet.Cell(c.Row, c.Col)),
		})
	}
	e.clip = clipboard{entries: entries}
}

// Paste writes the clipboard with its top-left at the selected cell. Cells
// falling outside the grid are dropped.
func (e *Engine) Paste() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paste(e.state.Selected)
}

func (e *Engine) paste(at models.Coord) error {
	if e.closed {
		return ErrClosed
	}
	if e.clip.empty() {
		return ErrEmptyClipboard
	}
	entries := e.clip.entries
	if e.clip.source != nil {
		src := *e.clip.source
		entries = []clipEntry{{cell: models.CloneCell(e.sheet.Cell(src.Row, src.Col))}}
	}
	updates := make([]models.CellUpdate, 0, len(entries))
	for _, entry := range entries {
		to := at.Add(entry.dr, entry.dc)
		if !e.sheet.InBounds(to.Row, to.Col) {
			continue
		}
		updates = append(updates, models.WriteUpdate(to.Row, to.Col, entry.cell))
	}
	e.commit("paste", updates)
	return nil
}

// ClearClipboard drops any copied content.
func (e *Engine) ClearClipboard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clip = clipboard{}
}

// DeleteRange clears value, formula and format of every cell in the active
// range. The format is replaced with an empty one, not merged.
func (e *Engine) DeleteRange() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.deleteRange(e.state.Active())
	return nil
}

func (e *Engine) deleteRange(r models.Range) {
	cells := r.Cells()
	updates := make([]models.CellUpdate, 0, len(cells))
	for _, c := range cells {
		updates = append(updates, models.ClearUpdate(c.Row, c.Col))
	}
	e.commit("delete", updates)
}
