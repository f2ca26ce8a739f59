package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/Dan9191/finance-dashboard/internal/repository"
)

const netWorthJSON = `{"netWorthResponse":{"assetValues":[
	{"netWorthAttribute":"A","value":{"units":"100"}},
	{"netWorthAttribute":"B","value":{"units":"300"}}]}}`

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestService(t *testing.T, files map[string]string) (*Service, string) {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		// a trailing slash marks an account directory without files
		if strings.HasSuffix(path, "/") {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return NewService(repository.NewRepository(root), testLogger()), root
}

func tabByKey(t *testing.T, d *models.Dashboard, key string) models.Tab {
	t.Helper()
	for _, tab := range d.Tabs {
		if tab.Key == key {
			return tab
		}
	}
	t.Fatalf("tab %q not found", key)
	return models.Tab{}
}

func TestDashboard_OnlyNetWorthPresent(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{
		"ACC1/fetch_net_worth.json": netWorthJSON,
	})

	d, err := svc.Dashboard(context.Background(), "ACC1")
	require.NoError(t, err)
	assert.Equal(t, "Account Overview", d.Title)
	assert.Equal(t, "ACC1", d.Selected)
	assert.Equal(t, []string{"ACC1"}, d.Accounts)
	require.Len(t, d.Tabs, len(models.Sources))

	for i, tab := range d.Tabs {
		assert.Equal(t, models.Sources[i].Label(), tab.Label, "tabs keep the fixed order")
		if tab.Source == models.SourceNetWorth {
			assert.Equal(t, models.TabReady, tab.Status)
			require.Len(t, tab.Sections, 1)
			require.NotNil(t, tab.Sections[0].Chart)
			continue
		}
		assert.Equal(t, models.TabAbsent, tab.Status, tab.Key)
		assert.Equal(t, "No data found for "+tab.Label, tab.Notice)
		assert.Empty(t, tab.Sections)
	}
}

func TestDashboard_DefaultsToFirstAccount(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{
		"ACC2/": "",
		"ACC1/": "",
	})

	d, err := svc.Dashboard(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "ACC1", d.Selected)
}

func TestDashboard_NoAccounts(t *testing.T) {
	svc, _ := newTestService(t, nil)

	d, err := svc.Dashboard(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, d.Selected)
	assert.Empty(t, d.Tabs)
	assert.NotEmpty(t, d.Notice)

	_, err = svc.FirstAccount()
	assert.ErrorIs(t, err, ErrNoAccounts)
}

func TestDashboard_UnknownAccount(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{"ACC1/": ""})

	_, err := svc.Dashboard(context.Background(), "ACC9")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = svc.Dashboard(context.Background(), "../ACC1")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestDashboard_MissingDataRoot(t *testing.T) {
	svc := NewService(repository.NewRepository(filepath.Join(t.TempDir(), "missing")), testLogger())

	_, err := svc.Dashboard(context.Background(), "")
	assert.ErrorIs(t, err, repository.ErrDataRootNotFound)
}

func TestDashboard_FailureIsolatedToTab(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{
		"ACC1/fetch_bank_transactions.json":  `{"bankTransactions": [`,
		"ACC1/fetch_stock_transactions.json": `{"stockTransactions":[{"isin":"X","txns":[[1,"d",1,1,1]]}]}`,
		"ACC1/fetch_net_worth.json":          netWorthJSON,
	})

	d, err := svc.Dashboard(context.Background(), "ACC1")
	require.NoError(t, err)

	bank := tabByKey(t, d, "bank_transactions")
	assert.Equal(t, models.TabFailed, bank.Status)
	assert.Contains(t, bank.Notice, "Bank Transactions")

	stock := tabByKey(t, d, "stock_transactions")
	assert.Equal(t, models.TabFailed, stock.Status)
	assert.Empty(t, stock.Sections)

	assert.Equal(t, models.TabReady, tabByKey(t, d, "net_worth").Status)
	assert.Equal(t, models.TabAbsent, tabByKey(t, d, "credit_report").Status)
}

func TestDashboard_CanceledContext(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{"ACC1/": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Dashboard(ctx, "ACC1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTab(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{
		"ACC1/fetch_net_worth.json": netWorthJSON,
	})

	tab, err := svc.Tab(context.Background(), "ACC1", models.SourceNetWorth)
	require.NoError(t, err)
	assert.Equal(t, models.TabReady, tab.Status)
	assert.Equal(t, "net_worth", tab.Key)

	tab, err = svc.Tab(context.Background(), "ACC1", models.SourceEPFDetails)
	require.NoError(t, err)
	assert.Equal(t, models.TabAbsent, tab.Status)

	_, err = svc.Tab(context.Background(), "nobody", models.SourceEPFDetails)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestTransform_UnknownSource(t *testing.T) {
	_, err := Transform(&models.Document{Source: models.Source(42), Value: map[string]any{}})
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestInventory(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{
		"ACC1/fetch_net_worth.json":         netWorthJSON,
		"ACC1/fetch_bank_transactions.json": `not json`,
		"ACC2/":                             "",
	})

	report, err := svc.Inventory()
	require.NoError(t, err)
	require.Len(t, report, 2)

	acc1 := report[0]
	assert.Equal(t, "ACC1", acc1.Account)
	assert.Equal(t, models.StatePresent, acc1.Sources["net_worth"])
	assert.Equal(t, models.StateMalformed, acc1.Sources["bank_transactions"])
	assert.Equal(t, 4, acc1.Count(models.StateAbsent))

	assert.Equal(t, len(models.Sources), report[1].Count(models.StateAbsent))
}
