package models

import "github.com/shopspring/decimal"

// ChartKind selects how a chart is drawn
type ChartKind string

const (
	ChartBar ChartKind = "bar"
	ChartPie ChartKind = "pie"
)

// Point is one bar or one pie slice
type Point struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	// Share is the percentage of the chart total, set for pie charts only
	Share decimal.Decimal `json:"share"`
}

// Chart is the single aggregate visual of a section
type Chart struct {
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title,omitempty"`
	Points []Point   `json:"points"`
}

// Total sums all point values
func (c *Chart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.Points {
		total = total.Add(p.Value)
	}
	return total
}
