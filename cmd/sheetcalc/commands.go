package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/cellref"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/formula"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/output"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/parser"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/store"
	"github.com/spf13/cobra"
)

func openStore(cmd *cobra.Command) (context.Context, *store.Dir, error) {
	d, err := store.NewDir(storeDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store.WithOwner(cmd.Context(), owner), d, nil
}

// withEngine opens a board, runs fn and closes the engine, which waits for
// every write to reach the store.
func withEngine(cmd *cobra.Command, boardID string, fn func(*spreadsheet.Engine) error) error {
	ctx, d, err := openStore(cmd)
	if err != nil {
		return err
	}
	opts := spreadsheet.DefaultOptions()
	opts.AutoRecompute = models.Bool(false)
	opts.Logger = slog.Default()

	var persistErr error
	opts.OnPersistError = func(err error) {
		if persistErr == nil {
			persistErr = err
		}
	}

	e, err := spreadsheet.Open(ctx, d, boardID, opts)
	if err != nil {
		return err
	}
	runErr := fn(e)
	e.Close()
	if runErr != nil {
		return runErr
	}
	return persistErr
}

func parseRef(ref string) (models.Coord, error) {
	at, ok := cellref.Parse(ref)
	if !ok {
		return models.Coord{}, fmt.Errorf("invalid cell reference: %s", ref)
	}
	return at, nil
}

func parseRange(ref string) (models.Range, error) {
	r, ok := cellref.ParseRange(ref)
	if !ok {
		return models.Range{}, fmt.Errorf("invalid range: %s", ref)
	}
	return r, nil
}

func newCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a blank board spreadsheet and print its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, d, err := openStore(cmd)
			if err != nil {
				return err
			}
			id, err := d.Create(ctx, owner, rows, cols)
			if err != nil {
				return fmt.Errorf("create failed: %w", err)
			}
			fmt.Println(id)
			return nil
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 10, "Number of rows")
	cmd.Flags().IntVar(&cols, "cols", 5, "Number of columns")
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boards owned by the caller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, d, err := openStore(cmd)
			if err != nil {
				return err
			}
			ids, err := d.List(ctx)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <board>",
		Short: "Delete a board spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, d, err := openStore(cmd)
			if err != nil {
				return err
			}
			return d.Delete(ctx, args[0])
		},
	}
}

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <board>",
		Short: "Print a board spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, d, err := openStore(cmd)
			if err != nil {
				return err
			}
			sheet, err := d.LoadSpreadsheet(ctx, args[0])
			if err != nil {
				return err
			}
			if !showDisplay {
				return printJSON(output.ToJSON(sheet, pretty))
			}
			header := make([]string, sheet.Cols)
			for c := range header {
				header[c] = cellref.ColumnLetter(c)
			}
			fmt.Println("\t" + strings.Join(header, "\t"))
			for r := 0; r < sheet.Rows; r++ {
				line := make([]string, sheet.Cols)
				for c := range line {
					line[c] = spreadsheet.DisplayValue(sheet.Cell(r, c))
				}
				fmt.Printf("%d\t%s\n", r+1, strings.Join(line, "\t"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showDisplay, "grid", false, "Print rendered values as a tab-separated grid")
	return cmd
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <board> <ref> <input>",
		Short: "Commit input (a literal or a formula starting with =) to a cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseRef(args[1])
			if err != nil {
				return err
			}
			return withEngine(cmd, args[0], func(e *spreadsheet.Engine) error {
				if err := e.SetCell(at.Row, at.Col, args[2]); err != nil {
					return err
				}
				fmt.Println(e.Cell(at.Row, at.Col).Value)
				return nil
			})
		},
	}
}

func evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <board> <formula>",
		Short: "Evaluate a formula against a board without storing it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, d, err := openStore(cmd)
			if err != nil {
				return err
			}
			sheet, err := d.LoadSpreadsheet(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println(formula.Evaluate(args[1], sheet))
			return nil
		},
	}
}

func refsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refs <formula>",
		Short: "List the cells a formula reads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := formula.Parse(args[0]); err != nil {
				return err
			}
			limit := models.Range{R2: parser.MaxImportRows - 1, C2: parser.MaxImportCols - 1}
			for _, c := range formula.References(args[0], limit) {
				fmt.Println(cellref.Format(c))
			}
			return nil
		},
	}
}

func recomputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recompute <board>",
		Short: "Re-evaluate formula cells, one dependency hop per pass",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, args[0], func(e *spreadsheet.Engine) error {
				n, err := e.Converge(cmd.Context(), passes)
				if err != nil {
					return err
				}
				slog.Info("recompute finished", slog.Int("passes", n))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&passes, "passes", 1, "Maximum number of recompute passes")
	return cmd
}

func tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables <board>",
		Short: "Print the tables detected on a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, args[0], func(e *spreadsheet.Engine) error {
				if !pretty {
					for _, t := range e.Tables() {
						fmt.Println(cellref.FormatRange(t))
					}
					return nil
				}
				return printJSON(output.RangesToJSON(e.Tables(), pretty))
			})
		},
	}
}

func insertTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insert-table <board> <ref>",
		Short: "Format a bordered table with a header row at a cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseRef(args[1])
			if err != nil {
				return err
			}
			return withEngine(cmd, args[0], func(e *spreadsheet.Engine) error {
				sheet := e.Snapshot()
				if err := e.Resize(max(sheet.Rows, at.Row+1), max(sheet.Cols, at.Col+1)); err != nil {
					return err
				}
				if err := e.Select(models.SingleCell(at)); err != nil {
					return err
				}
				table, err := e.InsertTable(tableRows, tableCols)
				if err != nil {
					return err
				}
				fmt.Println(cellref.FormatRange(table))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&tableRows, "rows", 3, "Table rows including the header")
	cmd.Flags().IntVar(&tableCols, "cols", 3, "Table columns")
	return cmd
}

func moveTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move-table <board> <from> <to>",
		Short: "Move the table whose top-left is <from> so it starts at <to>",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseRef(args[1])
			if err != nil {
				return err
			}
			to, err := parseRef(args[2])
			if err != nil {
				return err
			}
			return withEngine(cmd, args[0], func(e *spreadsheet.Engine) error {
				for _, t := range e.Tables() {
					if t.TopLeft() == from {
						return e.MoveTable(t, to)
					}
				}
				return fmt.Errorf("%w: %s", spreadsheet.ErrNoTable, args[1])
			})
		},
	}
}

func pasteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paste <board> <source-range> <dest-ref>",
		Short: "Copy a range and paste it with its top-left at a cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseRange(args[1])
			if err != nil {
				return err
			}
			dest, err := parseRef(args[2])
			if err != nil {
				return err
			}
			return withEngine(cmd, args[0], func(e *spreadsheet.Engine) error {
				if err := e.Select(src); err != nil {
					return err
				}
				if err := e.Copy(); err != nil {
					return err
				}
				if err := e.Select(models.SingleCell(dest)); err != nil {
					return err
				}
				return e.Paste()
			})
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <board> <range>",
		Short: "Clear values, formulas and formats of a range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRange(args[1])
			if err != nil {
				return err
			}
			return withEngine(cmd, args[0], func(e *spreadsheet.Engine) error {
				if err := e.Select(r); err != nil {
					return err
				}
				return e.DeleteRange()
			})
		},
	}
}

func formatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <board> <range>",
		Short: "Merge formatting into every cell of a range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRange(args[1])
			if err != nil {
				return err
			}
			var patch models.CellFormat
			flags := cmd.Flags()
			if flags.Changed("bold") {
				patch.Bold = models.Bool(bold)
			}
			if flags.Changed("italic") {
				patch.Italic = models.Bool(italic)
			}
			patch.Align = models.Alignment(align)
			patch.BackgroundColor = background
			patch.TextColor = textColor
			patch.FontSize = fontSize
			switch nf := models.NumberFormat(numberFormat); nf {
			case "", models.NumberFormatText, models.NumberFormatNumber, models.NumberFormatCurrency, models.NumberFormatPercent:
				patch.NumberFormat = nf
			default:
				return fmt.Errorf("invalid number format: %s (must be text, number, currency, or percent)", numberFormat)
			}

			return withEngine(cmd, args[0], func(e *spreadsheet.Engine) error {
				if err := e.Select(r); err != nil {
					return err
				}
				if patch.Align != "" {
					if err := e.SetAlignment(patch.Align); err != nil {
						return err
					}
					patch.Align = ""
				}
				if patch != (models.CellFormat{}) {
					if err := e.ApplyFormat(patch); err != nil {
						return err
					}
				}
				if borders != "" {
					return e.SetBorders(spreadsheet.BorderMode(borders), borderSpec)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&bold, "bold", false, "Set bold")
	cmd.Flags().BoolVar(&italic, "italic", false, "Set italic")
	cmd.Flags().StringVar(&align, "align", "", "Horizontal alignment: left, center, right")
	cmd.Flags().StringVar(&background, "bg", "", "Background color")
	cmd.Flags().StringVar(&textColor, "color", "", "Text color")
	cmd.Flags().IntVar(&fontSize, "font-size", 0, "Font size in pixels")
	cmd.Flags().StringVar(&numberFormat, "number-format", "", "Number format: text, number, currency, percent")
	cmd.Flags().StringVar(&borders, "borders", "", "Borders: all, outer, none")
	cmd.Flags().StringVar(&borderSpec, "border-spec", "", "Border spec, e.g. \"1px solid #d1d5db\"")
	return cmd
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <input.xlsx>",
		Short: "Create a board from one sheet of an xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imported, err := spreadsheet.ImportXLSX(args[0], importSheet)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			ctx, d, err := openStore(cmd)
			if err != nil {
				return err
			}
			id, err := d.Create(ctx, owner, 1, 1)
			if err != nil {
				return err
			}
			if err := d.Put(ctx, owner, id, imported.Sheet); err != nil {
				return err
			}
			slog.Debug("imported",
				slog.String("sheet", imported.SheetName),
				slog.Int("rows", imported.Sheet.Rows),
				slog.Int("cols", imported.Sheet.Cols),
				slog.Int("sized_cols", len(imported.ColWidths)),
				slog.Int("sized_rows", len(imported.RowHeights)),
				slog.Int("print_areas", len(imported.PrintAreas)),
			)
			fmt.Println(id)
			return nil
		},
	}
	cmd.Flags().StringVar(&importSheet, "sheet", "", "Sheet to import (default: first sheet)")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <board> <output.xlsx>",
		Short: "Write a board spreadsheet to an xlsx file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, d, err := openStore(cmd)
			if err != nil {
				return err
			}
			sheet, err := d.LoadSpreadsheet(ctx, args[0])
			if err != nil {
				return err
			}
			if err := spreadsheet.ExportXLSX(sheet, exportSheet, args[1]); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&exportSheet, "sheet", "Sheet1", "Sheet name in the workbook")
	return cmd
}
