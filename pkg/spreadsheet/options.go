// Package spreadsheet implements the grid engine of a board spreadsheet:
// editing, clipboard and format operations, table moves and a debounced
// recompute of formula cells, persisted through a host document store.
package spreadsheet

import (
	"log/slog"
	"time"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/parser"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/selection"
)

// Defaults used when the corresponding option is zero.
const (
	DefaultRecomputeDebounce     = 300 * time.Millisecond
	DefaultRecomputeCooldown     = 400 * time.Millisecond
	DefaultBlurGrace             = 150 * time.Millisecond
	DefaultTableBorder           = "1px solid #d1d5db"
	DefaultTableHeaderBackground = "#f3f4f6"
)

// Options configures engine behavior.
type Options struct {
	// RecomputeDebounce is the idle time after a change before formula
	// cells are re-evaluated.
	RecomputeDebounce time.Duration
	// RecomputeCooldown is how long the recompute guard stays set after a
	// recompute batch.
	RecomputeCooldown time.Duration
	// BlurGrace delays a blur commit so a formula-reference click lands first.
	BlurGrace time.Duration
	// AutoRecompute arms the debounce timer on every change.
	// If nil, defaults to true.
	AutoRecompute *bool
	// Logger receives engine logs. If nil, slog.Default() is used.
	Logger *slog.Logger
	// OnPersistError is called for every failed host write.
	OnPersistError func(error)
	// TableBorder is the border spec used by InsertTable and SetBorders.
	TableBorder string
	// TableHeaderBackground shades the header row of inserted tables.
	TableHeaderBackground string
	// TableParams bounds table detection.
	TableParams parser.TableDetectionParams
	// Geometry describes the rendered grid for pointer mapping.
	Geometry selection.Geometry
}

// DefaultOptions returns default engine options.
func DefaultOptions() Options {
	return Options{
		RecomputeDebounce:     DefaultRecomputeDebounce,
		RecomputeCooldown:     DefaultRecomputeCooldown,
		BlurGrace:             DefaultBlurGrace,
		TableBorder:           DefaultTableBorder,
		TableHeaderBackground: DefaultTableHeaderBackground,
		TableParams:           parser.DefaultTableParams(),
		Geometry:              selection.DefaultGeometry(),
	}
}

// ShouldAutoRecompute returns whether changes arm the recompute timer.
func (o Options) ShouldAutoRecompute() bool {
	if o.AutoRecompute != nil {
		return *o.AutoRecompute
	}
	return true
}

func (o Options) debounce() time.Duration {
	if o.RecomputeDebounce > 0 {
		return o.RecomputeDebounce
	}
	return DefaultRecomputeDebounce
}

func (o Options) cooldown() time.Duration {
	if o.RecomputeCooldown > 0 {
		return o.RecomputeCooldown
	}
	return DefaultRecomputeCooldown
}

func (o Options) blurGrace() time.Duration {
	if o.BlurGrace > 0 {
		return o.BlurGrace
	}
	return DefaultBlurGrace
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) tableBorder() string {
	if o.TableBorder != "" {
		return o.TableBorder
	}
	return DefaultTableBorder
}

func (o Options) tableHeaderBackground() string {
	if o.TableHeaderBackground != "" {
		return o.TableHeaderBackground
	}
	return DefaultTableHeaderBackground
}

func (o Options) tableParams() parser.TableDetectionParams {
	if o.TableParams.MinRows > 0 && o.TableParams.MinCols > 0 {
		return o.TableParams
	}
	return parser.DefaultTableParams()
}
