package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

// rowLayout describes a positional transaction row
type rowLayout struct {
	columns []string
	// typeCol holds the type-code, valueCol the column summed per type
	typeCol  int
	valueCol int
	codes    codebook
	// pad right-fills short rows with absent values instead of rejecting them
	pad bool
}

var (
	bankLayout = rowLayout{
		columns:  []string{"Amount", "Narration", "Date", "Type", "Mode", "Current Balance"},
		typeCol:  3,
		valueCol: 0,
		codes:    bankTypes,
	}
	mfLayout = rowLayout{
		columns:  []string{"Type", "Date", "Price", "Units", "Amount"},
		typeCol:  0,
		valueCol: 4,
		codes:    mfTypes,
	}
	stockLayout = rowLayout{
		columns:  []string{"Type", "Date", "Quantity", "NAV"},
		typeCol:  0,
		valueCol: 2,
		codes:    stockTypes,
		pad:      true,
	}
)

// padRow extends row with nil up to width entries
func padRow(row []any, width int) ([]any, error) {
	if len(row) > width {
		return nil, fmt.Errorf("row has %d fields, expected at most %d", len(row), width)
	}
	padded := make([]any, width)
	copy(padded, row)
	return padded, nil
}

// build turns raw rows into a table with the type column decoded, and a
// summary of valueCol per decoded type. Unmapped types stay in the table as
// absent cells and are left out of the summary.
func (l rowLayout) build(caption string, txns []any) (models.Table, []models.Point, error) {
	width := len(l.columns)
	table := models.Table{Caption: caption, Columns: l.columns, Rows: make([][]models.Cell, 0, len(txns))}
	sum := newSummary()

	for i, t := range txns {
		row, err := asList(t, fmt.Sprintf("txns[%d]", i))
		if err != nil {
			return table, nil, err
		}
		if l.pad {
			if row, err = padRow(row, width); err != nil {
				return table, nil, fmt.Errorf("txns[%d]: %w", i, err)
			}
		} else if len(row) != width {
			return table, nil, fmt.Errorf("txns[%d]: row has %d fields, expected %d", i, len(row), width)
		}

		cells := make([]models.Cell, width)
		for j, v := range row {
			cells[j] = cellOf(v)
		}

		label, mapped := l.codes.decode(row[l.typeCol])
		cells[l.typeCol] = models.Null
		if mapped {
			cells[l.typeCol] = models.Text(label)

			value := decimal.Zero
			if raw := row[l.valueCol]; raw != nil {
				if value, err = toDecimal(raw); err != nil {
					return table, nil, fmt.Errorf("txns[%d] %s: %w", i, l.columns[l.valueCol], err)
				}
			}
			sum.add(label, value)
		}

		table.Rows = append(table.Rows, cells)
	}

	return table, sum.points(), nil
}

// transformRows is shared by bank, mutual fund and stock exports: a list of
// groups, each with a heading field and positional txns
func transformRows(root map[string]any, listPath, headingKey, headingFormat string, layout rowLayout) ([]models.Section, error) {
	groups, err := listAt(root, listPath)
	if err != nil {
		return nil, err
	}

	sections := make([]models.Section, 0, len(groups))
	for i, g := range groups {
		what := fmt.Sprintf("%s[%d]", listPath, i)
		group, err := asObject(g, what)
		if err != nil {
			return nil, err
		}
		heading, err := required(group, headingKey, what)
		if err != nil {
			return nil, err
		}
		rawTxns, err := required(group, "txns", what)
		if err != nil {
			return nil, err
		}
		txns, err := asList(rawTxns, what+".txns")
		if err != nil {
			return nil, err
		}

		title := fmt.Sprintf(headingFormat, textOf(heading))
		table, points, err := layout.build(title, txns)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", what, err)
		}

		sections = append(sections, models.Section{
			Title:  title,
			Tables: []models.Table{table},
			Chart:  barChart(layout.columns[layout.valueCol]+" by Type", points),
		})
	}
	return sections, nil
}

func transformBankTransactions(root map[string]any) ([]models.Section, error) {
	return transformRows(root, "$.bankTransactions", "bank", "%s", bankLayout)
}

func transformMFTransactions(root map[string]any) ([]models.Section, error) {
	return transformRows(root, "$.mfTransactions", "schemeName", "%s", mfLayout)
}

func transformStockTransactions(root map[string]any) ([]models.Section, error) {
	return transformRows(root, "$.stockTransactions", "isin", "ISIN: %s", stockLayout)
}
