package chart

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

func parse(t *testing.T, svg string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(svg))
	root := doc.Root()
	require.NotNil(t, root)
	require.Equal(t, "svg", root.Tag)
	return root
}

func point(label, value, share string) models.Point {
	return models.Point{
		Label: label,
		Value: decimal.RequireFromString(value),
		Share: decimal.RequireFromString(share),
	}
}

func TestRenderSVG_Bar(t *testing.T) {
	svg, err := RenderSVG(&models.Chart{
		Kind:   models.ChartBar,
		Title:  "Amount by Type",
		Points: []models.Point{point("Credit", "6000", "0"), point("Debit", "-250.5", "0")},
	})
	require.NoError(t, err)

	root := parse(t, svg)
	bars := root.FindElements("//rect[@class='bar']")
	require.Len(t, bars, 2)
	assert.Equal(t, "Credit: 6000", bars[0].FindElement("title").Text())
	assert.Equal(t, "#4c78a8", bars[0].SelectAttrValue("fill", ""))

	// the negative bar starts at the baseline
	baseline := root.FindElement("//line[@class='baseline']")
	require.NotNil(t, baseline)
	assert.Equal(t, baseline.SelectAttrValue("y1", ""), bars[1].SelectAttrValue("y", ""))
	assert.Equal(t, "Amount by Type", root.FindElement("title").Text())
}

func TestRenderSVG_Pie(t *testing.T) {
	svg, err := RenderSVG(&models.Chart{
		Kind:   models.ChartPie,
		Points: []models.Point{point("A", "100", "25"), point("B", "300", "75")},
	})
	require.NoError(t, err)

	root := parse(t, svg)
	slices := root.FindElements("//path[@class='slice']")
	require.Len(t, slices, 2)
	assert.Equal(t, "A: 25.0%", slices[0].FindElement("title").Text())
	assert.Equal(t, "B: 75.0%", slices[1].FindElement("title").Text())

	legend := root.FindElements("//g[@class='legend']/text")
	require.Len(t, legend, 2)
	assert.Equal(t, "A 25.0%", legend[0].Text())
}

func TestRenderSVG_PieSingleSlice(t *testing.T) {
	svg, err := RenderSVG(&models.Chart{
		Kind:   models.ChartPie,
		Points: []models.Point{point("Only", "10", "100"), point("Nothing", "0", "0")},
	})
	require.NoError(t, err)

	root := parse(t, svg)
	assert.Len(t, root.FindElements("//circle[@class='slice']"), 1)
	assert.Empty(t, root.FindElements("//path[@class='slice']"))
}

func TestRenderSVG_Empty(t *testing.T) {
	for _, c := range []*models.Chart{
		{Kind: models.ChartBar},
		{Kind: models.ChartPie, Points: []models.Point{point("A", "0", "0")}},
	} {
		svg, err := RenderSVG(c)
		require.NoError(t, err)
		root := parse(t, svg)
		empty := root.FindElement("//text[@class='empty']")
		require.NotNil(t, empty)
		assert.Equal(t, "no data", empty.Text())
	}
}

func TestRenderSVG_Errors(t *testing.T) {
	_, err := RenderSVG(nil)
	assert.Error(t, err)

	_, err = RenderSVG(&models.Chart{Kind: "radar", Points: []models.Point{point("A", "1", "0")}})
	assert.Error(t, err)
}
