package spreadsheet

import (
	"context"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

// Host is the document store a board's spreadsheet lives in.
type Host interface {
	LoadSpreadsheet(ctx context.Context, boardID string) (*models.Spreadsheet, error)
	UpdateCell(ctx context.Context, boardID string, row, col int, value, formula string) error
	UpdateCellFormat(ctx context.Context, boardID string, row, col int, patch models.CellFormat) error
	ResizeColumns(ctx context.Context, boardID string, cols int) error
	ResizeRows(ctx context.Context, boardID string, rows int) error
}

// BatchUpdater is implemented by hosts that can apply many cell updates in
// one round trip. Hosts without it receive sequential per-cell writes.
type BatchUpdater interface {
	BatchUpdateCells(ctx context.Context, boardID string, updates []models.CellUpdate) error
}

// cellWrite pairs an update with the cell it produced locally, which is
// what a host without batch support is sent.
type cellWrite struct {
	update models.CellUpdate
	cell   models.Cell
}

// writeCells sends writes to host as one batch when supported, else one
// cell at a time, stopping at the first failure.
func writeCells(ctx context.Context, host Host, boardID string, writes []cellWrite) error {
	if b, ok := host.(BatchUpdater); ok {
		updates := make([]models.CellUpdate, len(writes))
		for i, w := range writes {
			updates[i] = w.update
		}
		return b.BatchUpdateCells(ctx, boardID, updates)
	}
	for _, w := range writes {
		u := w.update
		if u.Value != nil || u.Formula != nil {
			if err := host.UpdateCell(ctx, boardID, u.Row, u.Col, w.cell.Value, w.cell.Formula); err != nil {
				return err
			}
		}
		if u.Format == nil {
			continue
		}
		patch := *u.Format
		if u.ReplaceFormat {
			patch = resetPatch(w.cell.Format)
		}
		if err := host.UpdateCellFormat(ctx, boardID, u.Row, u.Col, patch); err != nil {
			return err
		}
	}
	return nil
}

// resetPatch turns a replacement format into a merge patch that also
// switches off bold, italic, borders and background the target does not
// carry. Other fields cannot be cleared through a merge patch.
func resetPatch(target *models.CellFormat) models.CellFormat {
	var patch models.CellFormat
	if target != nil {
		patch = *models.CloneFormat(target)
	}
	if patch.Bold == nil {
		patch.Bold = models.Bool(false)
	}
	if patch.Italic == nil {
		patch.Italic = models.Bool(false)
	}
	for _, edge := range []*string{&patch.BorderTop, &patch.BorderRight, &patch.BorderBottom, &patch.BorderLeft} {
		if *edge == "" {
			*edge = models.BorderNone
		}
	}
	if patch.BackgroundColor == "" {
		patch.BackgroundColor = "transparent"
	}
	return patch
}
