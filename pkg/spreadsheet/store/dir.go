package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/output"
	"github.com/google/uuid"
)

// Dir stores each board as <id>.json in a directory.
type Dir struct {
	path string
	mu   sync.Mutex
}

type envelope struct {
	Owner       string          `json:"owner,omitempty"`
	Spreadsheet json.RawMessage `json:"spreadsheet"`
}

// NewDir returns a store rooted at path, creating the directory if needed.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, err
	}
	return &Dir{path: path}, nil
}

// Path returns the store's root directory.
func (d *Dir) Path() string {
	return d.path
}

// Create adds a blank rows x cols spreadsheet owned by owner and returns
// the new board id.
func (d *Dir) Create(ctx context.Context, owner string, rows, cols int) (string, error) {
	id := uuid.NewString()
	return id, d.Put(ctx, owner, id, models.NewSpreadsheet(rows, cols))
}

// Put stores sheet under boardID, replacing any spreadsheet the caller owns.
// owner applies to new boards only; a replaced board keeps its owner.
func (d *Dir) Put(ctx context.Context, owner, boardID string, sheet *models.Spreadsheet) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	current, _, err := d.read(ctx, boardID)
	switch {
	case err == nil:
		owner = current
	case !errors.Is(err, ErrNotFound):
		return err
	}
	return d.write(boardID, owner, sheet)
}

// Delete removes a board.
func (d *Dir) Delete(ctx context.Context, boardID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, _, err := d.read(ctx, boardID); err != nil {
		return err
	}
	return os.Remove(d.file(boardID))
}

// List returns the ids of the boards the caller may open, sorted.
func (d *Dir) List(ctx context.Context) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		id, ok := strings.CutSuffix(e.Name(), ".json")
		if !ok || e.IsDir() {
			continue
		}
		if _, _, err := d.read(ctx, id); err == nil {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// LoadSpreadsheet reads the board's spreadsheet.
func (d *Dir) LoadSpreadsheet(ctx context.Context, boardID string) (*models.Spreadsheet, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, sheet, err := d.read(ctx, boardID)
	return sheet, err
}

// UpdateCell upserts one cell's value and formula. An empty formula
// removes it.
func (d *Dir) UpdateCell(ctx context.Context, boardID string, row, col int, value, formula string) error {
	return d.BatchUpdateCells(ctx, boardID, []models.CellUpdate{cellUpdate(row, col, value, formula)})
}

// UpdateCellFormat merges patch into one cell's format.
func (d *Dir) UpdateCellFormat(ctx context.Context, boardID string, row, col int, patch models.CellFormat) error {
	return d.BatchUpdateCells(ctx, boardID, []models.CellUpdate{formatUpdate(row, col, patch)})
}

// BatchUpdateCells applies all updates or none of them.
func (d *Dir) BatchUpdateCells(ctx context.Context, boardID string, updates []models.CellUpdate) error {
	return d.mutate(ctx, boardID, func(sheet *models.Spreadsheet) error {
		return applyAll(sheet, updates)
	})
}

// ResizeColumns grows the grid to cols columns.
func (d *Dir) ResizeColumns(ctx context.Context, boardID string, cols int) error {
	return d.mutate(ctx, boardID, func(sheet *models.Spreadsheet) error {
		sheet.Resize(sheet.Rows, cols)
		return nil
	})
}

// ResizeRows grows the grid to rows rows.
func (d *Dir) ResizeRows(ctx context.Context, boardID string, rows int) error {
	return d.mutate(ctx, boardID, func(sheet *models.Spreadsheet) error {
		sheet.Resize(rows, sheet.Cols)
		return nil
	})
}

func (d *Dir) mutate(ctx context.Context, boardID string, fn func(*models.Spreadsheet) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	owner, sheet, err := d.read(ctx, boardID)
	if err != nil {
		return err
	}
	if err := fn(sheet); err != nil {
		return err
	}
	return d.write(boardID, owner, sheet)
}

func (d *Dir) file(boardID string) string {
	return filepath.Join(d.path, boardID+".json")
}

func (d *Dir) read(ctx context.Context, boardID string) (string, *models.Spreadsheet, error) {
	if _, err := uuid.Parse(boardID); err != nil {
		return "", nil, ErrNotFound
	}
	data, err := os.ReadFile(d.file(boardID))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, ErrNotFound
	}
	if err != nil {
		return "", nil, err
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", nil, fmt.Errorf("board %s: %w", boardID, err)
	}
	if err := authorize(ctx, env.Owner); err != nil {
		return "", nil, err
	}
	sheet, err := output.FromJSON(env.Spreadsheet)
	if err != nil {
		return "", nil, fmt.Errorf("board %s: %w", boardID, err)
	}
	return env.Owner, sheet, nil
}

// write replaces the board file through a rename so readers never see a
// partial document.
func (d *Dir) write(boardID, owner string, sheet *models.Spreadsheet) error {
	raw, err := output.ToJSON(sheet, false)
	if err != nil {
		return err
	}
	data, err := json.Marshal(envelope{Owner: owner, Spreadsheet: raw})
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(d.path, boardID+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), d.file(boardID))
}
