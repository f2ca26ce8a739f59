package service

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

// codebook maps a transaction type-code to its label
type codebook map[int64]string

var (
	bankTypes  = codebook{1: "Credit", 2: "Debit"}
	mfTypes    = codebook{1: "Buy", 2: "Sell"}
	stockTypes = codebook{1: "Buy", 2: "Sell", 3: "Bonus", 4: "Split"}
)

// decode returns the label for a code. Only integral JSON numbers are
// codes; anything else, or an unknown code, is unmapped.
func (c codebook) decode(v any) (string, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return "", false
	}
	code, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil || f != float64(int64(f)) {
			return "", false
		}
		code = int64(f)
	}
	label, ok := c[code]
	return label, ok
}

// summary sums a numeric column per decoded type label
type summary struct {
	totals map[string]decimal.Decimal
}

func newSummary() *summary {
	return &summary{totals: make(map[string]decimal.Decimal)}
}

func (s *summary) add(label string, v decimal.Decimal) {
	s.totals[label] = s.totals[label].Add(v)
}

// points returns one point per label, sorted by label
func (s *summary) points() []models.Point {
	labels := make([]string, 0, len(s.totals))
	for label := range s.totals {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	points := make([]models.Point, 0, len(labels))
	for _, label := range labels {
		points = append(points, models.Point{Label: label, Value: s.totals[label]})
	}
	return points
}

func barChart(title string, points []models.Point) *models.Chart {
	return &models.Chart{Kind: models.ChartBar, Title: title, Points: points}
}

var hundred = decimal.NewFromInt(100)

// pieChart builds a pie whose shares are percentages of the total rounded
// to one decimal place
func pieChart(title string, labels []string, values []decimal.Decimal) (*models.Chart, error) {
	if len(labels) != len(values) {
		return nil, fmt.Errorf("pie chart: %d labels for %d values", len(labels), len(values))
	}

	total := decimal.Zero
	for i, v := range values {
		if v.IsNegative() {
			return nil, fmt.Errorf("pie chart: negative value %s for %q", v, labels[i])
		}
		total = total.Add(v)
	}

	points := make([]models.Point, len(values))
	for i, v := range values {
		share := decimal.Zero
		if total.IsPositive() {
			share = v.Mul(hundred).Div(total).Round(1)
		}
		points[i] = models.Point{Label: labels[i], Value: v, Share: share}
	}
	return &models.Chart{Kind: models.ChartPie, Title: title, Points: points}, nil
}
