package spreadsheet

import (
	"context"
	"log/slog"
	"time"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/formula"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

// recompute is the debounce timer and the running guard of the formula
// pass. Both are only touched with Engine.mu held.
type recompute struct {
	timer   *time.Timer
	guard   *time.Timer
	running bool
}

func (r *recompute) stop() {
	if r.timer != nil {
		r.timer.Stop()
	}
	if r.guard != nil {
		r.guard.Stop()
	}
}

// arm (re)starts the debounce timer.
func (e *Engine) arm() {
	if e.closed || !e.opts.ShouldAutoRecompute() {
		return
	}
	if e.rc.timer != nil {
		e.rc.timer.Stop()
	}
	e.rc.timer = time.AfterFunc(e.opts.debounce(), e.onDebounce)
}

func (e *Engine) onDebounce() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	updates := e.evaluate()
	if len(updates) == 0 {
		return
	}
	if e.rc.running {
		e.log.Debug("recompute skipped", slog.Int("changed", len(updates)))
		return
	}
	e.applyRecompute(updates)
	e.rc.running = true
	e.rc.guard = time.AfterFunc(e.opts.cooldown(), func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.rc.running = false
	})
}

// Recompute runs one formula pass now, bypassing the debounce timer and
// the running guard, and returns the updates it applied.
func (e *Engine) Recompute() []models.CellUpdate {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	updates := e.evaluate()
	if len(updates) > 0 {
		e.applyRecompute(updates)
	}
	return updates
}

// evaluate re-evaluates every formula cell against the current values and
// returns an update for each cell whose value changed. Nothing is applied,
// so every formula sees the values from before the pass.
func (e *Engine) evaluate() []models.CellUpdate {
	var updates []models.CellUpdate
	for _, at := range e.sheet.FormulaCells() {
		cell := e.sheet.Cell(at.Row, at.Col)
		value := formula.Evaluate(cell.Formula, e.sheet)
		if value == cell.Value {
			continue
		}
		updates = append(updates, models.CellUpdate{Row: at.Row, Col: at.Col, Value: models.String(value)})
	}
	return updates
}

func (e *Engine) applyRecompute(updates []models.CellUpdate) {
	e.log.Debug("recompute", slog.Int("changed", len(updates)))
	e.commit("recompute", updates)
}

// Converge runs recompute passes until nothing changes or maxPasses is
// reached, and returns the number of passes that changed a value.
func (e *Engine) Converge(ctx context.Context, maxPasses int) (int, error) {
	for pass := 0; pass < maxPasses; pass++ {
		if err := ctx.Err(); err != nil {
			return pass, err
		}
		if len(e.Recompute()) == 0 {
			return pass, nil
		}
	}
	return maxPasses, nil
}
