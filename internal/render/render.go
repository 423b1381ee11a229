// Package render turns evaluation results into text: an aligned table or a
// horizontal bar plot.
package render

import (
	"io"
	"math/big"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/gitrdm/urn/pkg/urn"
)

// Formats understood by Write.
const (
	FormatTable = "table"
	FormatPlot  = "plot"
)

// DefaultPlotWidth is the length of the longest bar when Options.Width is 0.
const DefaultPlotWidth = 40

// Options controls rendering.
type Options struct {
	// Format is FormatTable or FormatPlot. Empty means table.
	Format string
	// Rational shows probabilities as exact fractions instead of decimals.
	Rational bool
	// Precision is the number of decimal places for probabilities.
	Precision int32
	// Commas groups the digits of counts.
	Commas bool
	// Color enables ANSI styling.
	Color bool
	// Width is the plot bar length for the largest value.
	Width int
}

// Write renders res for req to w in the format opts selects.
func Write(w io.Writer, req *urn.Request, res *urn.Result, opts Options) error {
	if len(res.Sizes) != len(res.Values) {
		return urn.ErrShapeMismatch.New(len(res.Sizes), len(res.Values))
	}
	switch opts.Format {
	case FormatPlot:
		return Plot(w, req, res, opts)
	case FormatTable, "":
		return Table(w, req, res, opts)
	default:
		return urn.ErrUnsupported.New("output format", opts.Format)
	}
}

// FormatValue renders a single value. Counts are exact integers;
// probabilities are exact fractions or decimals rounded to opts.Precision
// places.
func FormatValue(v urn.Value, opts Options) string {
	switch v := v.(type) {
	case urn.Count:
		if opts.Commas {
			return humanize.BigComma(v.Int())
		}
		return v.String()
	case urn.Rational:
		if opts.Rational {
			return v.String()
		}
		return decimalOf(v.Rat(), opts.Precision).String()
	default:
		return v.String()
	}
}

func decimalOf(r *big.Rat, precision int32) decimal.Decimal {
	num := decimal.NewFromBigInt(r.Num(), 0)
	den := decimal.NewFromBigInt(r.Denom(), 0)
	return num.DivRound(den, precision)
}

// style returns a color that is applied only when enabled is set,
// regardless of whether the process writes to a terminal.
func style(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
