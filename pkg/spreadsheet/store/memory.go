package store

import (
	"context"
	"sort"
	"sync"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
	"github.com/google/uuid"
)

// Memory keeps board spreadsheets in process memory.
type Memory struct {
	mu     sync.Mutex
	boards map[string]*document
}

type document struct {
	owner string
	sheet *models.Spreadsheet
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{boards: make(map[string]*document)}
}

// Create adds a blank rows x cols spreadsheet owned by owner and returns
// the new board id.
func (m *Memory) Create(ctx context.Context, owner string, rows, cols int) (string, error) {
	id := uuid.NewString()
	return id, m.Put(ctx, owner, id, models.NewSpreadsheet(rows, cols))
}

// Put stores sheet under boardID, replacing any spreadsheet the caller owns.
// owner applies to new boards only; a replaced board keeps its owner.
func (m *Memory) Put(ctx context.Context, owner, boardID string, sheet *models.Spreadsheet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if doc, ok := m.boards[boardID]; ok {
		if err := authorize(ctx, doc.owner); err != nil {
			return err
		}
		owner = doc.owner
	}
	m.boards[boardID] = &document{owner: owner, sheet: sheet.Clone()}
	return nil
}

// Delete removes a board.
func (m *Memory) Delete(ctx context.Context, boardID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.lookup(ctx, boardID); err != nil {
		return err
	}
	delete(m.boards, boardID)
	return nil
}

// List returns the ids of the boards the caller may open, sorted.
func (m *Memory) List(ctx context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id, doc := range m.boards {
		if authorize(ctx, doc.owner) == nil {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// LoadSpreadsheet returns a copy of the board's spreadsheet.
func (m *Memory) LoadSpreadsheet(ctx context.Context, boardID string) (*models.Spreadsheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, err := m.lookup(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return doc.sheet.Clone(), nil
}

// UpdateCell upserts one cell's value and formula. An empty formula
// removes it.
func (m *Memory) UpdateCell(ctx context.Context, boardID string, row, col int, value, formula string) error {
	return m.BatchUpdateCells(ctx, boardID, []models.CellUpdate{cellUpdate(row, col, value, formula)})
}

// UpdateCellFormat merges patch into one cell's format.
func (m *Memory) UpdateCellFormat(ctx context.Context, boardID string, row, col int, patch models.CellFormat) error {
	return m.BatchUpdateCells(ctx, boardID, []models.CellUpdate{formatUpdate(row, col, patch)})
}

// BatchUpdateCells applies all updates or none of them.
func (m *Memory) BatchUpdateCells(ctx context.Context, boardID string, updates []models.CellUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, err := m.lookup(ctx, boardID)
	if err != nil {
		return err
	}
	return applyAll(doc.sheet, updates)
}

// ResizeColumns grows the grid to cols columns.
func (m *Memory) ResizeColumns(ctx context.Context, boardID string, cols int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, err := m.lookup(ctx, boardID)
	if err != nil {
		return err
	}
	doc.sheet.Resize(doc.sheet.Rows, cols)
	return nil
}

// ResizeRows grows the grid to rows rows.
func (m *Memory) ResizeRows(ctx context.Context, boardID string, rows int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, err := m.lookup(ctx, boardID)
	if err != nil {
		return err
	}
	doc.sheet.Resize(rows, doc.sheet.Cols)
	return nil
}

func (m *Memory) lookup(ctx context.Context, boardID string) (*document, error) {
	doc, ok := m.boards[boardID]
	if !ok {
		return nil, ErrNotFound
	}
	if err := authorize(ctx, doc.owner); err != nil {
		return nil, err
	}
	return doc, nil
}
