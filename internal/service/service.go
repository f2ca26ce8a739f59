package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/Dan9191/finance-dashboard/internal/repository"
)

const dashboardTitle = "Account Overview"

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrNoAccounts      = errors.New("no accounts found")
	ErrUnknownSource   = errors.New("unknown source")
)

// Service assembles dashboards from the exported account data
type Service struct {
	repo *repository.Repository
	log  *logrus.Logger
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Accounts lists the account identifiers available in the data root
func (s *Service) Accounts() ([]string, error) {
	return s.repo.ListAccounts()
}

// FirstAccount returns the account selected when none is requested
func (s *Service) FirstAccount() (string, error) {
	accounts, err := s.repo.ListAccounts()
	if err != nil {
		return "", err
	}
	if len(accounts) == 0 {
		return "", ErrNoAccounts
	}
	return accounts[0], nil
}

// Dashboard renders every source tab for account. An empty account selects
// the first one; with no accounts at all the shell is returned with a notice
// and no tabs.
func (s *Service) Dashboard(ctx context.Context, account string) (*models.Dashboard, error) {
	accounts, err := s.repo.ListAccounts()
	if err != nil {
		return nil, err
	}

	d := &models.Dashboard{
		Title:    dashboardTitle,
		Accounts: accounts,
		Tabs:     []models.Tab{},
	}

	if account == "" {
		if len(accounts) == 0 {
			d.Notice = "No accounts found in the data directory"
			return d, nil
		}
		account = accounts[0]
	}
	if !slices.Contains(accounts, account) {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	d.Selected = account

	for _, source := range models.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d.Tabs = append(d.Tabs, s.renderTab(account, source))
	}
	return d, nil
}

// Tab renders a single source for account
func (s *Service) Tab(ctx context.Context, account string, source models.Source) (*models.Tab, error) {
	accounts, err := s.repo.ListAccounts()
	if err != nil {
		return nil, err
	}
	if !slices.Contains(accounts, account) {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tab := s.renderTab(account, source)
	return &tab, nil
}

// renderTab never fails: a missing file becomes an absent notice, and
// unreadable or unexpected data fails this tab only
func (s *Service) renderTab(account string, source models.Source) models.Tab {
	tab := models.Tab{
		Source: source,
		Key:    source.Slug(),
		Label:  source.Label(),
	}
	logger := s.log.WithFields(logrus.Fields{
		"account": account,
		"source":  source.Slug(),
	})

	doc, err := s.repo.LoadSource(account, source)
	if err == nil && doc == nil {
		tab.Status = models.TabAbsent
		tab.Notice = fmt.Sprintf("No data found for %s", source.Label())
		logger.WithField("status", tab.Status).Debug("Tab rendered")
		return tab
	}
	if err == nil {
		tab.Sections, err = Transform(doc)
	}
	if err != nil {
		tab.Status = models.TabFailed
		tab.Sections = nil
		tab.Notice = fmt.Sprintf("Could not display %s: %v", source.Label(), err)
		logger.WithError(err).Warn("Failed to render tab")
		return tab
	}

	tab.Status = models.TabReady
	logger.WithFields(logrus.Fields{
		"status":   tab.Status,
		"sections": len(tab.Sections),
	}).Debug("Tab rendered")
	return tab
}

// Transform maps a loaded document onto its view sections
func Transform(doc *models.Document) ([]models.Section, error) {
	root, err := asObject(doc.Value, "document")
	if err != nil {
		return nil, err
	}

	switch doc.Source {
	case models.SourceBankTransactions:
		return transformBankTransactions(root)
	case models.SourceCreditReport:
		return transformCreditReport(root)
	case models.SourceMFTransactions:
		return transformMFTransactions(root)
	case models.SourceEPFDetails:
		return transformEPFDetails(root)
	case models.SourceNetWorth:
		return transformNetWorth(root)
	case models.SourceStockTransactions:
		return transformStockTransactions(root)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownSource, doc.Source)
	}
}

// Inventory reports which exports are present, absent or malformed for
// every account
func (s *Service) Inventory() ([]models.AccountInventory, error) {
	accounts, err := s.repo.ListAccounts()
	if err != nil {
		return nil, err
	}

	report := make([]models.AccountInventory, 0, len(accounts))
	for _, account := range accounts {
		inv := models.AccountInventory{
			Account: account,
			Sources: make(map[string]models.SourceState, len(models.Sources)),
		}
		for _, source := range models.Sources {
			doc, err := s.repo.LoadSource(account, source)
			switch {
			case err != nil:
				inv.Sources[source.Slug()] = models.StateMalformed
			case doc == nil:
				inv.Sources[source.Slug()] = models.StateAbsent
			default:
				inv.Sources[source.Slug()] = models.StatePresent
			}
		}
		report = append(report, inv)
	}
	return report, nil
}
