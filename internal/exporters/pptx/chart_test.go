package pptx

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presentai/presentai/internal/core/domain"
)

func TestChartXML_Kinds(t *testing.T) {
	style := NewStyle(testTheme(), nil)
	series := []domain.ChartSeries{
		{Name: "2024", Values: []float64{1, 2, 3}},
		{Name: "2025", Values: []float64{4, 5, 6}},
	}

	tests := []struct {
		kind     domain.ChartKind
		element  string
		axes     bool
		seriesN  int
		contains []string
	}{
		{domain.ChartPie, "<c:pieChart>", false, 1, []string{`<c:varyColors val="1"/>`, "<c:dPt>"}},
		{domain.ChartBar, "<c:barChart>", true, 2, []string{`<c:barDir val="col"/>`, `<c:grouping val="clustered"/>`}},
		{domain.ChartLine, "<c:lineChart>", true, 2, []string{`<c:marker val="1"/>`, `<c:smooth val="0"/>`}},
		{domain.ChartArea, "<c:areaChart>", true, 2, []string{`<c:grouping val="standard"/>`}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			data, err := ChartXML(&domain.Chart{
				ChartKind:  tt.kind,
				Categories: []string{"Q1", "Q2", "Q3"},
				Series:     series,
			}, style)
			require.NoError(t, err)

			xml := string(data)
			assert.True(t, strings.HasPrefix(xml, xmlHeader))
			assert.Contains(t, xml, tt.element)
			assert.Equal(t, tt.seriesN, strings.Count(xml, "<c:ser>"))
			assert.Equal(t, tt.axes, strings.Contains(xml, "<c:catAx>"))
			assert.Equal(t, tt.axes, strings.Contains(xml, "<c:valAx>"))
			assert.Contains(t, xml, `<c:autoTitleDeleted val="1"/>`)
			assert.Contains(t, xml, "<c:strLit>")
			assert.Contains(t, xml, "<c:numLit>")
			assert.NotContains(t, xml, "<c:externalData")
			for _, s := range tt.contains {
				assert.Contains(t, xml, s)
			}
		})
	}
}

func TestChartXML_PieUsesFirstSeries(t *testing.T) {
	data, err := ChartXML(&domain.Chart{
		ChartKind:  domain.ChartPie,
		Categories: []string{"a"},
		Series: []domain.ChartSeries{
			{Name: "first", Values: []float64{1, 2}},
			{Name: "second", Values: []float64{1, 2, 3, 4, 5}},
		},
	}, NewStyle(testTheme(), nil))
	require.NoError(t, err)

	xml := string(data)
	assert.Equal(t, 2, strings.Count(xml, "<c:dPt>"))
	assert.Contains(t, xml, `<c:pt idx="1"><c:v>2</c:v></c:pt>`)
	assert.NotContains(t, xml, "second")
	assert.Equal(t, 2, strings.Count(xml, `<c:ptCount val="2"/>`))
}

func TestChartXML_TitleAndGeneratedCategories(t *testing.T) {
	data, err := ChartXML(&domain.Chart{
		ChartKind: domain.ChartBar,
		Title:     "Sales & Growth",
		Series:    []domain.ChartSeries{{Values: []float64{1, math.NaN(), 3}}},
	}, NewStyle(testTheme(), nil))
	require.NoError(t, err)

	xml := string(data)
	assert.Contains(t, xml, "<a:t>Sales &amp; Growth</a:t>")
	assert.Contains(t, xml, `<c:autoTitleDeleted val="0"/>`)
	assert.Contains(t, xml, `<c:pt idx="2"><c:v>3</c:v></c:pt>`)
	assert.Contains(t, xml, `<c:pt idx="0"><c:v>1</c:v></c:pt>`)
	assert.NotContains(t, xml, "NaN")
	assert.Contains(t, xml, "<c:v>Series 1</c:v>")
}

func TestChartXML_Invalid(t *testing.T) {
	style := NewStyle(testTheme(), nil)

	_, err := ChartXML(&domain.Chart{ChartKind: "radar", Series: []domain.ChartSeries{{Values: []float64{1}}}}, style)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ChartXML(&domain.Chart{ChartKind: domain.ChartLine, Series: []domain.ChartSeries{{Name: "empty"}}}, style)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChart_RollbackKeepsNumbering(t *testing.T) {
	env, reg := testEnv(nil)
	good := &domain.Chart{Base: domain.Base{Frame: pct(0, 0, 50, 50)}, ChartKind: domain.ChartBar,
		Series: []domain.ChartSeries{{Values: []float64{1}}}}
	bad := &domain.Chart{Base: domain.Base{Frame: pct(0, 0, 50, 50)}, ChartKind: "radar",
		Series: []domain.ChartSeries{{Values: []float64{1}}}}

	part := AssembleSlide(&domain.Slide{Elements: []domain.Element{good, bad, good}}, 1, env)

	require.Len(t, reg.charts, 2)
	require.Len(t, part.Diagnostics, 1)
	assert.Equal(t, "2", part.Diagnostics[0].Path)
	xml := part.Rels.XML()
	assert.Contains(t, string(xml), `Target="../charts/chart1.xml"`)
	assert.Contains(t, string(xml), `Target="../charts/chart2.xml"`)
	assert.Equal(t, 3, part.Rels.Len())
}
