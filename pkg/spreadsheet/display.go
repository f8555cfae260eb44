package spreadsheet

import (
	"strconv"
	"strings"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/formula"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var displayPrinter = message.NewPrinter(language.English)

// DisplayValue renders a cell's stored value according to its number
// format. Non-numeric values and error markers are shown as stored.
func DisplayValue(c models.Cell) string {
	if c.Format == nil || formula.IsErrorMarker(c.Value) {
		return c.Value
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
	if err != nil {
		return c.Value
	}
	switch c.Format.NumberFormat {
	case models.NumberFormatNumber:
		return fixed2(v)
	case models.NumberFormatCurrency:
		if v < 0 {
			return "-$" + fixed2(-v)
		}
		return "$" + fixed2(v)
	case models.NumberFormatPercent:
		return displayPrinter.Sprint(number.Decimal(v*100, number.MaxFractionDigits(2))) + "%"
	}
	return c.Value
}

func fixed2(v float64) string {
	return displayPrinter.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
