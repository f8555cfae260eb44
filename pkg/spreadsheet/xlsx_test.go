package spreadsheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXLSXRoundTrip(t *testing.T) {
	sheet := models.NewSpreadsheet(3, 3)
	sheet.Set(0, 0, models.Cell{Value: "Item", Format: &models.CellFormat{
		Bold:            models.Bool(true),
		BackgroundColor: "#F3F4F6",
		BorderTop:       "1px solid #D1D5DB",
	}})
	sheet.Set(1, 0, models.Cell{Value: "42"})
	sheet.Set(1, 1, models.Cell{Value: "1234.5", Format: &models.CellFormat{NumberFormat: models.NumberFormatCurrency, Align: models.AlignRight}})
	sheet.Set(2, 1, models.Cell{Value: "84", Formula: "=A2*2"})

	path := filepath.Join(t.TempDir(), "board.xlsx")
	require.NoError(t, ExportXLSX(sheet, "Board", path))

	imported, err := ImportXLSX(path, "")
	require.NoError(t, err)
	assert.Equal(t, "Board", imported.SheetName)

	got := imported.Sheet
	assert.Equal(t, 3, got.Rows)
	assert.GreaterOrEqual(t, got.Cols, 2)
	assert.Equal(t, "Item", got.Value(0, 0))
	assert.Equal(t, "42", got.Value(1, 0))
	assert.Equal(t, "1234.5", got.Value(1, 1))
	assert.Equal(t, "=A2*2", got.Cell(2, 1).Formula)

	header := got.Cell(0, 0).Format
	require.NotNil(t, header)
	assert.True(t, header.IsBold())
	assert.Equal(t, "#F3F4F6", header.BackgroundColor)
	assert.Equal(t, "1px solid #D1D5DB", header.BorderTop)

	price := got.Cell(1, 1).Format
	require.NotNil(t, price)
	assert.Equal(t, models.NumberFormatCurrency, price.NumberFormat)
	assert.Equal(t, models.AlignRight, price.Align)
}

func TestImportXLSXErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ImportXLSX(filepath.Join(dir, "missing.xlsx"), "")
	assert.ErrorIs(t, err, ErrFileNotFound)

	bogus := filepath.Join(dir, "bogus.xlsx")
	require.NoError(t, os.WriteFile(bogus, []byte("not a workbook"), 0644))
	_, err = ImportXLSX(bogus, "")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	path := filepath.Join(dir, "ok.xlsx")
	require.NoError(t, ExportXLSX(models.NewSpreadsheet(1, 1), "", path))
	_, err = ImportXLSX(path, "Nope")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestDisplayValue(t *testing.T) {
	tests := []struct {
		cell     models.Cell
		expected string
	}{
		{models.Cell{Value: "1234.5"}, "1234.5"},
		{models.Cell{Value: "1234.5", Format: &models.CellFormat{NumberFormat: models.NumberFormatNumber}}, "1,234.50"},
		{models.Cell{Value: "1234.5", Format: &models.CellFormat{NumberFormat: models.NumberFormatCurrency}}, "$1,234.50"},
		{models.Cell{Value: "-3", Format: &models.CellFormat{NumberFormat: models.NumberFormatCurrency}}, "-$3.00"},
		{models.Cell{Value: "0.125", Format: &models.CellFormat{NumberFormat: models.NumberFormatPercent}}, "12.5%"},
		{models.Cell{Value: "abc", Format: &models.CellFormat{NumberFormat: models.NumberFormatNumber}}, "abc"},
		{models.Cell{Value: "#DIV/0!", Format: &models.CellFormat{NumberFormat: models.NumberFormatPercent}}, "#DIV/0!"},
		{models.Cell{Value: "7", Format: &models.CellFormat{NumberFormat: models.NumberFormatText}}, "7"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, DisplayValue(tt.cell), "value %q", tt.cell.Value)
	}
}
