package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

// transformCreditReport reads the first credit report. Every level of
// nesting may be missing and renders as empty; a level of the wrong type
// is an error.
func transformCreditReport(root map[string]any) ([]models.Section, error) {
	reports, err := listAt(root, "$.creditReports")
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if len(reports) > 0 {
		if data, err = objectAt(reports[0], "$.creditReportData"); err != nil {
			return nil, err
		}
	}

	section := models.Section{}
	msg, ok, err := scalarAt(data, "$.userMessage.userMessageText")
	if err != nil {
		return nil, err
	}
	if ok {
		section.Text = textOf(msg)
	}

	account, err := objectAt(data, "$.creditAccount.creditAccountSummary.account")
	if err != nil {
		return nil, err
	}
	section.Tables = append(section.Tables, recordTable("Account Summary", []map[string]any{account}))

	list, err := listAt(data, "$.creditAccount.creditAccountDetails")
	if err != nil {
		return nil, err
	}
	details, err := objects(list, "creditAccountDetails")
	if err != nil {
		return nil, err
	}

	if len(details) > 0 {
		names := make([]string, len(details))
		balances := make([]decimal.Decimal, len(details))
		for i, d := range details {
			balance, err := intOrZero(d, "$.currentBalance")
			if err != nil {
				return nil, fmt.Errorf("creditAccountDetails[%d]: %w", i, err)
			}
			balances[i] = decimal.NewFromInt(balance)
			names[i] = textOf(d["subscriberName"])
		}
		if section.Chart, err = pieChart("Current Balance by Subscriber", names, balances); err != nil {
			return nil, err
		}
	}

	return []models.Section{section}, nil
}

// transformEPFDetails renders one section per UAN account with its
// establishments and their net PF balance
func transformEPFDetails(root map[string]any) ([]models.Section, error) {
	accounts, err := listAt(root, "$.uanAccounts")
	if err != nil {
		return nil, err
	}

	sections := make([]models.Section, 0, len(accounts))
	for i, a := range accounts {
		what := fmt.Sprintf("uanAccounts[%d]", i)
		account, err := asObject(a, what)
		if err != nil {
			return nil, err
		}
		list, err := listAt(account, "$.rawDetails.est_details")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", what, err)
		}
		ests, err := objects(list, what+".est_details")
		if err != nil {
			return nil, err
		}

		title, err := uanTitle(account, i)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", what, err)
		}
		section := models.Section{
			Title:  title,
			Tables: []models.Table{recordTable("Establishments", ests)},
		}

		if len(ests) > 0 {
			points := make([]models.Point, len(ests))
			for j, est := range ests {
				balance, err := intOrZero(est, "$.pf_balance.net_balance")
				if err != nil {
					return nil, fmt.Errorf("%s.est_details[%d]: %w", what, j, err)
				}
				points[j] = models.Point{Label: textOf(est["est_name"]), Value: decimal.NewFromInt(balance)}
			}
			section.Chart = barChart("Net Balance by Establishment", points)
		}

		sections = append(sections, section)
	}
	return sections, nil
}

func uanTitle(account map[string]any, i int) (string, error) {
	for _, key := range []string{"uan", "uanNumber"} {
		v, ok, err := scalarAt(account, "$."+key)
		if err != nil {
			return "", err
		}
		if ok {
			return "UAN " + textOf(v), nil
		}
	}
	return fmt.Sprintf("UAN Account %d", i+1), nil
}

// transformNetWorth lists assets and liabilities and charts the asset mix.
// Every asset must carry a numeric value.units when the chart is drawn.
func transformNetWorth(root map[string]any) ([]models.Section, error) {
	nw, err := objectAt(root, "$.netWorthResponse")
	if err != nil {
		return nil, err
	}

	assetList, err := listAt(nw, "$.assetValues")
	if err != nil {
		return nil, err
	}
	liabilityList, err := listAt(nw, "$.liabilityValues")
	if err != nil {
		return nil, err
	}
	assets, err := objects(assetList, "assetValues")
	if err != nil {
		return nil, err
	}
	liabilities, err := objects(liabilityList, "liabilityValues")
	if err != nil {
		return nil, err
	}

	section := models.Section{
		Tables: []models.Table{
			recordTable("Assets", assets),
			recordTable("Liabilities", liabilities),
		},
	}

	if len(assets) > 0 {
		labels := make([]string, len(assets))
		values := make([]decimal.Decimal, len(assets))
		for i, a := range assets {
			what := fmt.Sprintf("assetValues[%d]", i)
			attr, err := required(a, "netWorthAttribute", what)
			if err != nil {
				return nil, err
			}
			units, ok, err := scalarAt(a, "$.value.units")
			if err != nil {
				return nil, fmt.Errorf("%s: %w", what, err)
			}
			if !ok {
				return nil, fmt.Errorf("%s: missing value.units", what)
			}
			if values[i], err = toDecimal(units); err != nil {
				return nil, fmt.Errorf("%s value.units: %w", what, err)
			}
			labels[i] = textOf(attr)
		}
		if section.Chart, err = pieChart("Asset Allocation", labels, values); err != nil {
			return nil, err
		}
	}

	return []models.Section{section}, nil
}
