package spreadsheet

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/parser"
	"github.com/xuri/excelize/v2"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates the workbook has no sheet with the given name.
var ErrSheetNotFound = errors.New("sheet not found")

// Import is a spreadsheet read from a workbook together with the sheet's
// column widths and row heights in pixels and its print areas.
type Import struct {
	Sheet      *models.Spreadsheet
	SheetName  string
	ColWidths  map[int]int
	RowHeights map[int]int
	PrintAreas []models.Range
}

// ImportXLSX reads one sheet of an xlsx file. An empty sheetName selects
// the first sheet.
func ImportXLSX(path, sheetName string) (*Import, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}

	sheet, err := parser.ExtractCells(f, sheetName)
	if err != nil {
		return nil, NewOperationError("import", sheetName, err)
	}
	cols, rows := parser.ExtractGeometry(f, sheetName, sheet.Rows, sheet.Cols)
	return &Import{
		Sheet:      sheet,
		SheetName:  sheetName,
		ColWidths:  cols,
		RowHeights: rows,
		PrintAreas: parser.ExtractPrintAreas(f, sheetName),
	}, nil
}

// ExportXLSX writes sheet to path as a single-sheet workbook. Formula cells
// keep their formula and cached value; styles are mapped back to xlsx.
func ExportXLSX(sheet *models.Spreadsheet, sheetName, path string) error {
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	f := excelize.NewFile()
	defer f.Close()

	if def := f.GetSheetName(0); def != sheetName {
		if err := f.SetSheetName(def, sheetName); err != nil {
			return err
		}
	}

	styles := make(map[string]int)
	for _, at := range sheet.Bounds().Cells() {
		c := sheet.Cell(at.Row, at.Col)
		if c.Value == "" && !c.HasFormula() && c.Format == nil {
			continue
		}
		name, err := excelize.CoordinatesToCellName(at.Col+1, at.Row+1)
		if err != nil {
			return err
		}
		if c.Value != "" {
			if err := f.SetCellValue(sheetName, name, parser.ParseValue(c.Value)); err != nil {
				return err
			}
		}
		if c.HasFormula() {
			if err := f.SetCellFormula(sheetName, name, strings.TrimPrefix(c.Formula, "=")); err != nil {
				return err
			}
		}
		if err := setStyle(f, sheetName, name, c.Format, styles); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// setStyle applies format to a cell, creating each distinct style once.
func setStyle(f *excelize.File, sheetName, cell string, format *models.CellFormat, styles map[string]int) error {
	style := parser.FormatToStyle(format)
	if style == nil {
		return nil
	}
	key := fmt.Sprintf("%+v|%+v|%+v|%+v|%d", style.Font, style.Alignment, style.Fill, style.Border, style.NumFmt)
	id, ok := styles[key]
	if !ok {
		var err error
		if id, err = f.NewStyle(style); err != nil {
			return err
		}
		styles[key] = id
	}
	return f.SetCellStyle(sheetName, cell, cell, id)
}
