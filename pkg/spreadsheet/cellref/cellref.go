// Package cellref converts between human cell references ("B12") and
// zero-based grid coordinates.
package cellref

import (
	"strconv"
	"strings"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

// ColumnLetter returns the column label for a zero-based index:
// 0 -> "A", 25 -> "Z", 26 -> "AA".
func ColumnLetter(index int) string {
	if index < 0 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return string(buf[i:])
}

// MaxColumnLetters bounds the length of a column label; longer labels
// would overflow the index.
const MaxColumnLetters = 7

// ColumnIndex is the inverse of ColumnLetter. It returns -1 for anything
// that is not a run of at most MaxColumnLetters letters.
func ColumnIndex(letters string) int {
	if letters == "" || len(letters) > MaxColumnLetters {
		return -1
	}
	n := 0
	for i := 0; i < len(letters); i++ {
		ch := letters[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			n = n*26 + int(ch-'A') + 1
		case ch >= 'a' && ch <= 'z':
			n = n*26 + int(ch-'a') + 1
		default:
			return -1
		}
	}
	return n - 1
}

// Parse accepts one or more letters followed by one or more digits,
// case-insensitively, and returns the zero-based coordinate.
func Parse(text string) (models.Coord, bool) {
	split := 0
	for split < len(text) && isLetter(text[split]) {
		split++
	}
	if split == 0 || split == len(text) {
		return models.Coord{}, false
	}
	digits := text[split:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return models.Coord{}, false
		}
	}
	row, err := strconv.Atoi(digits)
	if err != nil || row < 1 {
		return models.Coord{}, false
	}
	col := ColumnIndex(text[:split])
	if col < 0 {
		return models.Coord{}, false
	}
	return models.Coord{Row: row - 1, Col: col}, true
}

// ParseRange parses "A1:B3" (corners in any order) or a single reference.
func ParseRange(text string) (models.Range, bool) {
	start, end, found := strings.Cut(strings.TrimSpace(text), ":")
	a, ok := Parse(strings.TrimSpace(start))
	if !ok {
		return models.Range{}, false
	}
	if !found {
		return models.SingleCell(a), true
	}
	b, ok := Parse(strings.TrimSpace(end))
	if !ok {
		return models.Range{}, false
	}
	return models.NewRange(a, b), true
}

// Format renders a coordinate as a reference.
func Format(c models.Coord) string {
	return ColumnLetter(c.Col) + strconv.Itoa(c.Row+1)
}

// FormatRange renders a range as "A1:B3", or a single reference for 1x1.
func FormatRange(r models.Range) string {
	if r.Height() == 1 && r.Width() == 1 {
		return Format(r.TopLeft())
	}
	return Format(r.TopLeft()) + ":" + Format(r.BottomRight())
}

func isLetter(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}
