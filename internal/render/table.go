package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/gitrdm/urn/pkg/urn"
)

const columnGap = "  "

// Table writes a two-column table: selection size and value, each column
// right-aligned under a header and a rule.
//
//	draw size  count
//	---------  -----
//	        3   9139
func Table(w io.Writer, req *urn.Request, res *urn.Result, opts Options) error {
	if len(res.Sizes) != len(res.Values) {
		return urn.ErrShapeMismatch.New(len(res.Sizes), len(res.Values))
	}

	headers := []string{req.XLabel(), req.YLabel()}
	rows := make([][]string, len(res.Sizes))
	for i, k := range res.Sizes {
		rows[i] = []string{strconv.Itoa(k), FormatValue(res.Values[i], opts)}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	bold := style(opts.Color, color.Bold)
	var b strings.Builder
	writeRow(&b, headers, widths, bold.Sprint)
	rule := make([]string, len(widths))
	for i, n := range widths {
		rule[i] = strings.Repeat("-", n)
	}
	writeRow(&b, rule, widths, fmt.Sprint)
	for _, row := range rows {
		writeRow(&b, row, widths, fmt.Sprint)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, cells []string, widths []int, paint func(...interface{}) string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(columnGap)
		}
		b.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
		b.WriteString(paint(cell))
	}
	b.WriteByte('\n')
}
