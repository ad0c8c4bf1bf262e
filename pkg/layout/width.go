package layout

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-plantillas/internal/model"
)

const (
	// GridColumns is the width of the layout grid.
	GridColumns = 12

	spanClassPrefix = "col-span-"
	percentFactor   = 0.9
)

// Policy is the closed set of width policies: GridSpan, PercentWidth and
// RawClass.
type Policy interface {
	// Class returns the CSS class carrying the policy, if any.
	Class() string
	// Style returns the inline style carrying the policy, if any.
	Style() string

	isPolicy()
}

// GridSpan occupies N of 12 grid columns.
type GridSpan int

// PercentWidth is an explicit width percentage.
type PercentWidth float64

// RawClass is a caller supplied class applied verbatim.
type RawClass string

func (g GridSpan) Class() string { return spanClassPrefix + strconv.Itoa(int(g)) }
func (GridSpan) Style() string { return "" }
func (GridSpan) isPolicy() {}

func (PercentWidth) Class() string { return "" }
func (p PercentWidth) Style() string {
	return "width: " + strconv.FormatFloat(float64(p), 'f', -1, 64) + "%"
}
func (PercentWidth) isPolicy() {}

func (r RawClass) Class() string { return string(r) }
func (RawClass) Style() string { return "" }
func (RawClass) isPolicy() {}

// percentSpans lists the spans translated to a percentage width.
var percentSpans = map[int]struct{}{5: {}, 6: {}, 7: {}, 9: {}, 10: {}, 11: {}}

// ComputeWidth normalises a width hint. nil yields a full-width GridSpan.
func ComputeWidth(span any) Policy {
	if span == nil {
		return GridSpan(GridColumns)
	}

	if text, ok := span.(string); ok {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return GridSpan(GridColumns)
		}
		if n, ok := model.IntValue(trimmed); ok {
			return FromSpan(n)
		}
		if rest, found := strings.CutPrefix(trimmed, spanClassPrefix); found {
			if n, err := strconv.Atoi(rest); err == nil {
				return FromSpan(n)
			}
		}
		return RawClass(text)
	}

	if n, ok := model.IntValue(span); ok {
		return FromSpan(n)
	}
	return GridSpan(GridColumns)
}

// FromSpan clamps n into [1,12] and applies the percentage table.
func FromSpan(n int) Policy {
	n = Clamp(n)
	if _, ok := percentSpans[n]; ok {
		return PercentWidth(float64(n) * 100 * percentFactor / GridColumns)
	}
	return GridSpan(n)
}

// Clamp bounds n to the grid.
func Clamp(n int) int {
	if n < 1 {
		return 1
	}
	if n > GridColumns {
		return GridColumns
	}
	return n
}
