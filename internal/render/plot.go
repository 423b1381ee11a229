package render

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/gitrdm/urn/pkg/urn"
)

const barRune = "█"

// Plot writes one horizontal bar per selection size, scaled so the largest
// value spans opts.Width cells, followed by the value itself. Floating point
// is used only to size the bars.
func Plot(w io.Writer, req *urn.Request, res *urn.Result, opts Options) error {
	if len(res.Sizes) != len(res.Values) {
		return urn.ErrShapeMismatch.New(len(res.Sizes), len(res.Values))
	}
	width := opts.Width
	if width <= 0 {
		width = DefaultPlotWidth
	}

	labels := make([]string, len(res.Sizes))
	heights := make([]float64, len(res.Values))
	labelWidth := runewidth.StringWidth(req.XLabel())
	var top float64
	for i, k := range res.Sizes {
		labels[i] = strconv.Itoa(k)
		labelWidth = max(labelWidth, runewidth.StringWidth(labels[i]))
		heights[i], _ = res.Values[i].Rat().Float64()
		top = max(top, heights[i])
	}

	bold := style(opts.Color, color.Bold)
	bar := style(opts.Color, color.FgCyan)
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth-runewidth.StringWidth(req.XLabel())))
	b.WriteString(bold.Sprint(req.XLabel()))
	b.WriteString(columnGap)
	b.WriteString(bold.Sprint(req.YLabel()))
	b.WriteByte('\n')
	for i, label := range labels {
		n := 0
		if top > 0 {
			n = int(math.Round(heights[i] / top * float64(width)))
		}
		b.WriteString(strings.Repeat(" ", labelWidth-runewidth.StringWidth(label)))
		b.WriteString(label)
		b.WriteString(" |")
		b.WriteString(bar.Sprint(strings.Repeat(barRune, n)))
		b.WriteString(strings.Repeat(" ", width-n))
		b.WriteString(" ")
		b.WriteString(FormatValue(res.Values[i], opts))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
