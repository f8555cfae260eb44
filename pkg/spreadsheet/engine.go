package spreadsheet

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/cellref"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/formula"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/parser"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/selection"
)

// Engine owns the local state of one open board spreadsheet. Edits are
// applied to the local grid immediately and written to the host in the
// background. All methods are safe for concurrent use.
type Engine struct {
	boardID string
	host    Host
	opts    Options
	log     *slog.Logger
	persist *persister

	mu        sync.Mutex
	sheet     *models.Spreadsheet
	state     selection.State
	clip      clipboard
	tables    []models.Range
	rc        recompute
	blurTimer *time.Timer
	closed    bool
}

// Open loads a board's spreadsheet from host and returns an engine for it.
// ctx is kept, without its cancellation, for background writes.
func Open(ctx context.Context, host Host, boardID string, opts Options) (*Engine, error) {
	sheet, err := host.LoadSpreadsheet(ctx, boardID)
	if err != nil {
		return nil, NewOperationError("load", boardID, err)
	}
	return New(ctx, host, boardID, sheet, opts), nil
}

// New returns an engine over an already loaded spreadsheet. The engine
// works on its own copy of sheet.
func New(ctx context.Context, host Host, boardID string, sheet *models.Spreadsheet, opts Options) *Engine {
	log := opts.logger().With(slog.String("board", boardID))
	e := &Engine{
		boardID: boardID,
		host:    host,
		opts:    opts,
		log:     log,
		persist: newPersister(ctx, boardID, log, opts.OnPersistError),
		sheet:   sheet.Clone(),
	}
	e.state = selection.New(e.sheet.Rows, e.sheet.Cols, opts.Geometry)
	e.tables = parser.FindTables(e.sheet, opts.tableParams())
	return e
}

// BoardID returns the board the engine edits.
func (e *Engine) BoardID() string {
	return e.boardID
}

// Snapshot returns a copy of the local grid.
func (e *Engine) Snapshot() *models.Spreadsheet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sheet.Clone()
}

// Cell returns a copy of the cell at (row, col).
func (e *Engine) Cell(row, col int) models.Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	return models.CloneCell(e.sheet.Cell(row, col))
}

// Display returns the cell's value rendered with its number format.
func (e *Engine) Display(row, col int) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return DisplayValue(e.sheet.Cell(row, col))
}

// State returns the current interaction state.
func (e *Engine) State() selection.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Select moves the selection to the given range, anchored at its top-left.
// An open edit is committed first.
func (e *Engine) Select(r models.Range) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if !e.sheet.InBounds(r.R1, r.C1) || !e.sheet.InBounds(r.R2, r.C2) {
		return ErrOutOfBounds
	}
	var eff selection.Effect
	e.state, eff = selection.Reduce(e.state, selection.Click{Cell: r.TopLeft()}, e.sheet)
	if err := e.perform(eff); err != nil {
		return err
	}
	if r.Height() > 1 || r.Width() > 1 {
		e.state, _ = selection.Reduce(e.state, selection.Click{Cell: r.BottomRight(), Shift: true}, e.sheet)
	}
	return nil
}

// Handle feeds a UI event through the selection reducer and carries out
// the resulting effect.
func (e *Engine) Handle(ev selection.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	var eff selection.Effect
	e.state, eff = selection.Reduce(e.state, ev, e.sheet)
	return e.perform(eff)
}

func (e *Engine) perform(eff selection.Effect) error {
	switch eff := eff.(type) {
	case nil:
		return nil
	case selection.Commit:
		return e.setCell(eff.Cell.Row, eff.Cell.Col, eff.Text)
	case selection.ScheduleBlur:
		if e.blurTimer != nil {
			e.blurTimer.Stop()
		}
		e.blurTimer = time.AfterFunc(e.opts.blurGrace(), func() {
			if err := e.Handle(selection.BlurElapsed{}); err != nil && err != ErrClosed {
				e.log.Warn("blur commit failed", slog.Any("error", err))
			}
		})
		return nil
	case selection.Copy:
		e.copyRange(e.state.Active())
		return nil
	case selection.Paste:
		return e.paste(e.state.Selected)
	case selection.Delete:
		e.deleteRange(e.state.Active())
		return nil
	case selection.ToggleBold:
		e.toggle(e.state.Active(), e.state.Anchor(), true)
		return nil
	case selection.ToggleItalic:
		e.toggle(e.state.Active(), e.state.Anchor(), false)
		return nil
	case selection.Align:
		e.formatRange("align", e.state.Active(), models.CellFormat{Align: eff.Align})
		return nil
	case selection.MoveTable:
		return e.moveTable(eff.Table, eff.To)
	case selection.TrackResized:
		e.log.Debug("track resized", slog.Int("axis", int(eff.Axis)), slog.Int("index", eff.Index), slog.Int("size", eff.Size))
		return nil
	}
	return nil
}

// SetCell commits user input to (row, col). Input starting with "=" is
// stored as a formula together with its evaluated value.
func (e *Engine) SetCell(row, col int, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setCell(row, col, text)
}

// SetCellRef is SetCell addressed by a reference such as "B12".
func (e *Engine) SetCellRef(ref, text string) error {
	at, ok := cellref.Parse(ref)
	if !ok {
		return ErrOutOfBounds
	}
	return e.SetCell(at.Row, at.Col, text)
}

func (e *Engine) setCell(row, col int, text string) error {
	if e.closed {
		return ErrClosed
	}
	if !e.sheet.InBounds(row, col) {
		return ErrOutOfBounds
	}
	value, raw := text, ""
	if strings.HasPrefix(text, "=") {
		raw = text
		value = formula.Evaluate(text, e.sheet)
	}
	e.sheet.Apply(models.CellUpdate{Row: row, Col: col, Value: models.String(value), Formula: models.String(raw)})
	e.changed()

	e.persist.enqueue("update cell", func(ctx context.Context) error {
		return e.host.UpdateCell(ctx, e.boardID, row, col, value, raw)
	})
	return nil
}

// BatchUpdate applies updates locally and writes them to the host as one
// batch. Updates outside the grid are rejected as a whole.
func (e *Engine) BatchUpdate(updates []models.CellUpdate) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	for _, u := range updates {
		if !e.sheet.InBounds(u.Row, u.Col) {
			return ErrOutOfBounds
		}
	}
	e.commit("batch update", updates)
	return nil
}

// commit applies in-bounds updates to the local grid, re-arms recompute
// and queues the host write.
func (e *Engine) commit(op string, updates []models.CellUpdate) {
	writes := make([]cellWrite, 0, len(updates))
	for _, u := range updates {
		if !e.sheet.Apply(u) {
			continue
		}
		writes = append(writes, cellWrite{update: u, cell: models.CloneCell(e.sheet.Cell(u.Row, u.Col))})
	}
	if len(writes) == 0 {
		return
	}
	e.changed()
	e.log.Debug("commit", slog.String("op", op), slog.Int("cells", len(writes)))
	e.persist.enqueue(op, func(ctx context.Context) error {
		return writeCells(ctx, e.host, e.boardID, writes)
	})
}

// Resize grows the grid to rows x cols.
func (e *Engine) Resize(rows, cols int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if rows < e.sheet.Rows || cols < e.sheet.Cols {
		return ErrShrink
	}
	e.grow(rows, cols)
	return nil
}

func (e *Engine) grow(rows, cols int) {
	oldRows, oldCols := e.sheet.Rows, e.sheet.Cols
	if rows <= oldRows && cols <= oldCols {
		return
	}
	e.sheet.Resize(rows, cols)
	e.state, _ = selection.Reduce(e.state, selection.Resize{Rows: e.sheet.Rows, Cols: e.sheet.Cols}, e.sheet)
	e.changed()

	if cols > oldCols {
		e.persist.enqueue("resize columns", func(ctx context.Context) error {
			return e.host.ResizeColumns(ctx, e.boardID, cols)
		})
	}
	if rows > oldRows {
		e.persist.enqueue("resize rows", func(ctx context.Context) error {
			return e.host.ResizeRows(ctx, e.boardID, rows)
		})
	}
}

// Reload replaces the local grid with a copy of the host's.
func (e *Engine) Reload(ctx context.Context) error {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return ErrClosed
	}
	loaded, err := e.host.LoadSpreadsheet(ctx, e.boardID)
	if err != nil {
		return NewOperationError("load", e.boardID, err)
	}
	sheet := loaded.Clone()
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.sheet = sheet
	e.state, _ = selection.Reduce(e.state, selection.Resize{Rows: sheet.Rows, Cols: sheet.Cols}, sheet)
	e.changed()
	return nil
}

// Tables returns the tables detected after the last change.
func (e *Engine) Tables() []models.Range {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Range(nil), e.tables...)
}

// Flush waits until every host write queued so far has completed.
func (e *Engine) Flush() {
	e.persist.flush()
}

// Close stops pending timers and drains queued host writes.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.rc.stop()
	if e.blurTimer != nil {
		e.blurTimer.Stop()
	}
	e.mu.Unlock()
	e.persist.close()
}

// changed runs after every change to the local grid.
func (e *Engine) changed() {
	e.tables = parser.FindTables(e.sheet, e.opts.tableParams())
	e.arm()
}
