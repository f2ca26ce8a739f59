// Package chart draws dashboard charts as standalone SVG documents.
package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/beevik/etree"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

const (
	width  = 560
	height = 320
	margin = 48
)

var palette = []string{
	"#4c78a8", "#f58518", "#54a24b", "#e45756", "#72b7b2",
	"#eeca3b", "#b279a2", "#ff9da6", "#9d755d", "#bab0ac",
}

// RenderSVG returns the chart as an SVG document
func RenderSVG(c *models.Chart) (string, error) {
	if c == nil {
		return "", fmt.Errorf("chart is nil")
	}

	doc := etree.NewDocument()
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", width, height))
	svg.CreateAttr("class", "chart chart-"+string(c.Kind))
	svg.CreateAttr("role", "img")
	if c.Title != "" {
		svg.CreateElement("title").SetText(c.Title)
	}

	if len(c.Points) == 0 || allZero(c) {
		text(svg, width/2, height/2, "no data", "middle").CreateAttr("class", "empty")
	} else {
		switch c.Kind {
		case models.ChartBar:
			drawBars(svg, c.Points)
		case models.ChartPie:
			drawPie(svg, c.Points)
		default:
			return "", fmt.Errorf("unsupported chart kind %q", c.Kind)
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to write svg: %w", err)
	}
	return out, nil
}

func allZero(c *models.Chart) bool {
	for _, p := range c.Points {
		if !p.Value.IsZero() {
			return false
		}
	}
	return true
}

// drawBars draws one bar per point against a zero baseline; negative values
// hang below it
func drawBars(svg *etree.Element, points []models.Point) {
	lo, hi := 0.0, 0.0
	for _, p := range points {
		v := p.Value.InexactFloat64()
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	plotH := float64(height - 2*margin)
	plotW := float64(width - 2*margin)
	scale := plotH / span
	baseline := float64(margin) + hi*scale

	slot := plotW / float64(len(points))
	barW := slot * 0.6

	axis := svg.CreateElement("line")
	axis.CreateAttr("class", "baseline")
	axis.CreateAttr("x1", num(margin))
	axis.CreateAttr("x2", num(float64(width-margin)))
	axis.CreateAttr("y1", num(baseline))
	axis.CreateAttr("y2", num(baseline))
	axis.CreateAttr("stroke", "#333")

	for i, p := range points {
		v := p.Value.InexactFloat64()
		h := math.Abs(v) * scale
		y := baseline - h
		if v < 0 {
			y = baseline
		}
		x := float64(margin) + slot*float64(i) + (slot-barW)/2

		rect := svg.CreateElement("rect")
		rect.CreateAttr("class", "bar")
		rect.CreateAttr("x", num(x))
		rect.CreateAttr("y", num(y))
		rect.CreateAttr("width", num(barW))
		rect.CreateAttr("height", num(h))
		rect.CreateAttr("fill", palette[i%len(palette)])
		rect.CreateElement("title").SetText(p.Label + ": " + p.Value.String())

		text(svg, x+barW/2, float64(height-margin)+16, p.Label, "middle").CreateAttr("class", "label")
		valueY := y - 4
		if v < 0 {
			valueY = y + h + 12
		}
		text(svg, x+barW/2, valueY, p.Value.String(), "middle").CreateAttr("class", "value")
	}
}

// drawPie draws slices clockwise from twelve o'clock with a legend carrying
// the rounded share of each slice
func drawPie(svg *etree.Element, points []models.Point) {
	cx, cy := float64(height)/2, float64(height)/2
	r := float64(height)/2 - 16

	total := 0.0
	for _, p := range points {
		total += p.Value.InexactFloat64()
	}

	angle := -math.Pi / 2
	for i, p := range points {
		v := p.Value.InexactFloat64()
		if v <= 0 {
			continue
		}
		frac := v / total
		color := palette[i%len(palette)]

		var slice *etree.Element
		if frac >= 1 {
			slice = svg.CreateElement("circle")
			slice.CreateAttr("cx", num(cx))
			slice.CreateAttr("cy", num(cy))
			slice.CreateAttr("r", num(r))
		} else {
			end := angle + frac*2*math.Pi
			large := 0
			if frac > 0.5 {
				large = 1
			}
			slice = svg.CreateElement("path")
			slice.CreateAttr("d", fmt.Sprintf("M %s %s L %s %s A %s %s 0 %d 1 %s %s Z",
				num(cx), num(cy),
				num(cx+r*math.Cos(angle)), num(cy+r*math.Sin(angle)),
				num(r), num(r), large,
				num(cx+r*math.Cos(end)), num(cy+r*math.Sin(end))))
			angle = end
		}
		slice.CreateAttr("class", "slice")
		slice.CreateAttr("fill", color)
		slice.CreateElement("title").SetText(p.Label + ": " + p.Share.StringFixed(1) + "%")
	}

	legend := svg.CreateElement("g")
	legend.CreateAttr("class", "legend")
	for i, p := range points {
		y := float64(margin) + float64(i)*20
		swatch := legend.CreateElement("rect")
		swatch.CreateAttr("x", num(float64(height)+16))
		swatch.CreateAttr("y", num(y-10))
		swatch.CreateAttr("width", "12")
		swatch.CreateAttr("height", "12")
		swatch.CreateAttr("fill", palette[i%len(palette)])
		text(legend, float64(height)+34, y, fmt.Sprintf("%s %s%%", p.Label, p.Share.StringFixed(1)), "start")
	}
}

func text(parent *etree.Element, x, y float64, s, anchor string) *etree.Element {
	t := parent.CreateElement("text")
	t.CreateAttr("x", num(x))
	t.CreateAttr("y", num(y))
	t.CreateAttr("text-anchor", anchor)
	t.CreateAttr("font-size", "12")
	t.SetText(s)
	return t
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
