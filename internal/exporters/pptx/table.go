package pptx

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/presentai/presentai/internal/core/domain"
)

// table writes a table as a graphic frame holding <a:tbl>.
func (sc *slideContext) table(t *domain.Table, frame Rect) (string, error) {
	cols := t.ColumnCount()
	if len(t.Rows) == 0 || cols == 0 {
		return "", fmt.Errorf("%w: table has no cells", domain.ErrInvalidInput)
	}
	widths := Distribute(frame.W, t.ColumnWeights, cols)
	heights := Distribute(frame.H, t.RowWeights, len(t.Rows))

	id := sc.shapeID()
	var b strings.Builder
	fmt.Fprintf(&b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Table %d"/>`, id, id)
	b.WriteString(`<p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>`)
	fmt.Fprintf(&b, `<p:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></p:xfrm>`, frame.X, frame.Y, frame.W, frame.H)
	b.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl>`)
	if t.HeaderRow {
		b.WriteString(`<a:tblPr firstRow="1" bandRow="1"/>`)
	} else {
		b.WriteString(`<a:tblPr bandRow="1"/>`)
	}
	b.WriteString(`<a:tblGrid>`)
	for _, w := range widths {
		fmt.Fprintf(&b, `<a:gridCol w="%d"/>`, w)
	}
	b.WriteString(`</a:tblGrid>`)

	for i, row := range t.Rows {
		header := t.HeaderRow && i == 0
		fmt.Fprintf(&b, `<a:tr h="%d">`, heights[i])
		for j := 0; j < cols; j++ {
			var cell domain.TableCell
			if j < len(row.Cells) {
				cell = row.Cells[j]
			}
			b.WriteString(sc.tableCell(cell, header))
		}
		b.WriteString(`</a:tr>`)
	}
	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
	return b.String(), nil
}

func (sc *slideContext) tableCell(cell domain.TableCell, header bool) string {
	opts := textOptions{}
	fill := ""
	if cell.Content.Fill != "" {
		fill = solidFill(sc.style.Color(cell.Content.Fill, domain.RoleBackground))
	}
	if header {
		opts.bold = true
		opts.color = domain.RoleBackground
		if fill == "" {
			fill = solidFill(sc.style.Palette.Primary)
		}
	}
	var b strings.Builder
	b.WriteString(`<a:tc><a:txBody>`)
	b.WriteString(sc.textContent(cell.Content.Paragraphs, opts))
	b.WriteString(`</a:txBody><a:tcPr>`)
	b.WriteString(fill)
	b.WriteString(`</a:tcPr></a:tc>`)
	return b.String()
}

// Distribute splits total into n integer parts proportional to weights,
// using the largest remainder method so the parts sum exactly to total.
// Missing or non-positive weights count as 1.
func Distribute(total int64, weights []float64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	if total < 0 {
		total = 0
	}
	ws := make([]float64, n)
	var sum float64
	for i := range ws {
		w := 1.0
		if i < len(weights) && weights[i] > 0 && !math.IsInf(weights[i], 0) {
			w = weights[i]
		}
		ws[i] = w
		sum += w
	}

	out := make([]int64, n)
	type remainder struct {
		index int
		frac  float64
	}
	rems := make([]remainder, n)
	var assigned int64
	for i, w := range ws {
		exact := float64(total) * w / sum
		floor := math.Floor(exact)
		out[i] = int64(floor)
		assigned += out[i]
		rems[i] = remainder{index: i, frac: exact - floor}
	}

	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for left, k := total-assigned, 0; left > 0; left, k = left-1, k+1 {
		out[rems[k%n].index]++
	}
	// Float error can overshoot by a unit; take it back from the largest part.
	for over := assigned - total; over > 0; over-- {
		largest := 0
		for i := range out {
			if out[i] > out[largest] {
				largest = i
			}
		}
		out[largest]--
	}
	return out
}
