package pptx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presentai/presentai/internal/core/domain"
)

func TestDistribute(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		weights []float64
		n       int
		want    []int64
	}{
		{"even split", 9, nil, 3, []int64{3, 3, 3}},
		{"remainder to largest fraction", 10, []float64{1, 1, 1}, 3, []int64{4, 3, 3}},
		{"weighted", 100, []float64{1, 3}, 2, []int64{25, 75}},
		{"missing weights count as one", 40, []float64{2}, 3, []int64{20, 10, 10}},
		{"non-positive weights count as one", 30, []float64{0, -5, 1}, 3, []int64{10, 10, 10}},
		{"negative total", -5, nil, 2, []int64{0, 0}},
		{"no parts", 100, nil, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distribute(tt.total, tt.weights, tt.n))
		})
	}
}

func TestDistribute_SumsExactly(t *testing.T) {
	weightSets := [][]float64{
		nil,
		{1},
		{0.1, 0.2, 0.7},
		{1, 2.5, 0, 3.3333},
		{1e-9, 1e9, 7},
		{3, 3, 3, 3, 3, 3, 3},
	}
	totals := []int64{0, 1, 7, 1000, 6096000, 12192000, 6858001}

	for _, weights := range weightSets {
		for _, total := range totals {
			for n := 1; n <= 9; n++ {
				parts := Distribute(total, weights, n)
				require.Len(t, parts, n)
				var sum int64
				for _, p := range parts {
					assert.GreaterOrEqual(t, p, int64(0))
					sum += p
				}
				assert.Equal(t, total, sum, "total=%d weights=%v n=%d", total, weights, n)
			}
		}
	}
}

func TestTable_RaggedRowsPadded(t *testing.T) {
	env, _ := testEnv(nil)
	tbl := &domain.Table{
		Base: domain.Base{Frame: pct(0, 0, 50, 50)},
		Rows: []domain.TableRow{
			{Cells: []domain.TableCell{{Content: *textBlock(domain.Frame{}, "a")}}},
			{Cells: []domain.TableCell{{Content: *textBlock(domain.Frame{}, "b")}, {Content: *textBlock(domain.Frame{}, "c")}}},
		},
	}
	part := AssembleSlide(&domain.Slide{Elements: []domain.Element{tbl}}, 1, env)

	xml := string(part.XML)
	assert.Empty(t, part.Diagnostics)
	assert.Equal(t, 2, strings.Count(xml, "<a:gridCol "))
	assert.Equal(t, 4, strings.Count(xml, "<a:tc>"))
	assert.Contains(t, xml, `<a:tblPr bandRow="1"/>`)
}

func TestTable_HeaderRowStyled(t *testing.T) {
	env, _ := testEnv(nil)
	theme := testTheme()
	tbl := &domain.Table{
		Base:      domain.Base{Frame: pct(0, 0, 50, 50)},
		HeaderRow: true,
		Rows: []domain.TableRow{
			{Cells: []domain.TableCell{{Content: *textBlock(domain.Frame{}, "head")}}},
			{Cells: []domain.TableCell{{Content: *textBlock(domain.Frame{}, "body")}}},
		},
	}
	part := AssembleSlide(&domain.Slide{Elements: []domain.Element{tbl}}, 1, env)

	xml := string(part.XML)
	assert.Contains(t, xml, `<a:tblPr firstRow="1" bandRow="1"/>`)
	assert.Contains(t, xml, `<a:tcPr><a:solidFill><a:srgbClr val="`+theme.Light.Primary+`"/></a:solidFill></a:tcPr>`)
	assert.Equal(t, 1, strings.Count(xml, ` b="1"`))
}

func TestTable_EmptyIsPlaceholder(t *testing.T) {
	env, _ := testEnv(nil)
	part := AssembleSlide(&domain.Slide{Elements: []domain.Element{
		&domain.Table{Base: domain.Base{Frame: pct(0, 0, 50, 50)}},
	}}, 3, env)

	require.Len(t, part.Diagnostics, 1)
	assert.Equal(t, 3, part.Diagnostics[0].Slide)
	assert.Equal(t, domain.KindTable, part.Diagnostics[0].ElementKind)
	assert.Equal(t, domain.FailurePartialElement, part.Diagnostics[0].Kind)
	assert.Contains(t, part.Diagnostics[0].Message, domain.ErrElementSerialization.Error())
	assert.Contains(t, string(part.XML), `name="Placeholder`)
}
