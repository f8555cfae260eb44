package spreadsheet

import (
	"fmt"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

// BorderMode selects which edges SetBorders touches.
type BorderMode string

const (
	// BordersAll sets every edge of every cell in the range.
	BordersAll BorderMode = "all"
	// BordersOuter sets only the edges on the range perimeter.
	BordersOuter BorderMode = "outer"
	// BordersNone removes every edge of every cell in the range.
	BordersNone BorderMode = "none"
)

// ToggleBold flips bold over the active range, keyed on the anchor cell,
// so a mixed range converges to one state.
func (e *Engine) ToggleBold() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.toggle(e.state.Active(), e.state.Anchor(), true)
	return nil
}

// ToggleItalic flips italics over the active range, keyed on the anchor.
func (e *Engine) ToggleItalic() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.toggle(e.state.Active(), e.state.Anchor(), false)
	return nil
}

func (e *Engine) toggle(r models.Range, anchor models.Coord, bold bool) {
	current := e.sheet.Cell(anchor.Row, anchor.Col).Format
	if bold {
		e.formatRange("toggle bold", r, models.CellFormat{Bold: models.Bool(!current.IsBold())})
		return
	}
	e.formatRange("toggle italic", r, models.CellFormat{Italic: models.Bool(!current.IsItalic())})
}

// SetAlignment aligns every cell of the active range.
func (e *Engine) SetAlignment(a models.Alignment) error {
	switch a {
	case models.AlignLeft, models.AlignCenter, models.AlignRight:
	default:
		return fmt.Errorf("unknown alignment %q", a)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.formatRange("align", e.state.Active(), models.CellFormat{Align: a})
	return nil
}

// ApplyFormat merges patch into the format of every cell in the active range.
func (e *Engine) ApplyFormat(patch models.CellFormat) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.formatRange("format", e.state.Active(), patch)
	return nil
}

func (e *Engine) formatRange(op string, r models.Range, patch models.CellFormat) {
	cells := r.Cells()
	updates := make([]models.CellUpdate, 0, len(cells))
	for _, c := range cells {
		updates = append(updates, models.CellUpdate{Row: c.Row, Col: c.Col, Format: models.CloneFormat(&patch)})
	}
	e.commit(op, updates)
}

// SetBorders draws borders on the active range. An empty spec uses the
// configured table border.
func (e *Engine) SetBorders(mode BorderMode, spec string) error {
	if spec == "" {
		spec = e.opts.tableBorder()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	updates, err := borderUpdates(e.state.Active(), mode, spec)
	if err != nil {
		return err
	}
	e.commit("borders", updates)
	return nil
}

func borderUpdates(r models.Range, mode BorderMode, spec string) ([]models.CellUpdate, error) {
	var updates []models.CellUpdate
	for _, c := range r.Cells() {
		var patch models.CellFormat
		switch mode {
		case BordersAll:
			patch = models.CellFormat{BorderTop: spec, BorderRight: spec, BorderBottom: spec, BorderLeft: spec}
		case BordersNone:
			none := models.BorderNone
			patch = models.CellFormat{BorderTop: none, BorderRight: none, BorderBottom: none, BorderLeft: none}
		case BordersOuter:
			if c.Row == r.R1 {
				patch.BorderTop = spec
			}
			if c.Row == r.R2 {
				patch.BorderBottom = spec
			}
			if c.Col == r.C1 {
				patch.BorderLeft = spec
			}
			if c.Col == r.C2 {
				patch.BorderRight = spec
			}
			if patch == (models.CellFormat{}) {
				continue
			}
		default:
			return nil, fmt.Errorf("unknown border mode %q", mode)
		}
		updates = append(updates, models.CellUpdate{Row: c.Row, Col: c.Col, Format: &patch})
	}
	return updates, nil
}
