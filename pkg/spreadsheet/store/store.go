// Package store provides reference document stores for board spreadsheets:
// an in-memory store and a directory of JSON documents. Both enforce board
// ownership and apply updates with the same merge and replace rules.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

var (
	// ErrNotFound indicates the board has no spreadsheet.
	ErrNotFound = errors.New("spreadsheet not found")
	// ErrForbidden indicates the board is owned by someone else.
	ErrForbidden = errors.New("board not owned by caller")
	// ErrInvalidCell indicates an update addressed a cell outside the grid.
	ErrInvalidCell = errors.New("cell out of bounds")
)

type ownerKey struct{}

// WithOwner returns a context identifying the caller as owner.
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey{}, owner)
}

// OwnerFrom returns the caller identity carried by ctx.
func OwnerFrom(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerKey{}).(string)
	return owner, ok
}

// authorize checks that the caller may access a board owned by owner.
// Unowned boards are open to everyone.
func authorize(ctx context.Context, owner string) error {
	if owner == "" {
		return nil
	}
	if caller, _ := OwnerFrom(ctx); caller != owner {
		return ErrForbidden
	}
	return nil
}

// applyAll validates every update before applying any, so a batch is
// either written whole or not at all.
func applyAll(sheet *models.Spreadsheet, updates []models.CellUpdate) error {
	for _, u := range updates {
		if !sheet.InBounds(u.Row, u.Col) {
			return fmt.Errorf("%w: (%d, %d) in %dx%d grid", ErrInvalidCell, u.Row, u.Col, sheet.Rows, sheet.Cols)
		}
	}
	for _, u := range updates {
		sheet.Apply(u)
	}
	return nil
}

func cellUpdate(row, col int, value, formula string) models.CellUpdate {
	return models.CellUpdate{Row: row, Col: col, Value: models.String(value), Formula: models.String(formula)}
}

func formatUpdate(row, col int, patch models.CellFormat) models.CellUpdate {
	return models.CellUpdate{Row: row, Col: col, Format: &patch}
}
