package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

// Inventorier produces the per-account source inventory
type Inventorier interface {
	Inventory() ([]models.AccountInventory, error)
}

// Scheduler periodically scans the data root and logs what each account holds
type Scheduler struct {
	cron *cron.Cron
	svc  Inventorier
	log  *logrus.Logger
}

// NewScheduler initializes a scheduler; nothing runs until Start
func NewScheduler(svc Inventorier, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		svc:  svc,
		log:  log,
	}
}

// Start registers the inventory scan on spec and starts the cron loop.
// An empty spec disables scanning.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		s.log.Info("Inventory scan disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(spec, func() { s.Scan() }); err != nil {
		return fmt.Errorf("failed to schedule inventory scan %q: %w", spec, err)
	}
	s.cron.Start()
	s.log.Infof("Inventory scan scheduled: %s", spec)
	return nil
}

// Stop halts the cron loop and waits for a running scan to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Scan runs one inventory pass and logs a line per account
func (s *Scheduler) Scan() {
	report, err := s.svc.Inventory()
	if err != nil {
		s.log.WithError(err).Error("Inventory scan failed")
		return
	}

	for _, inv := range report {
		entry := s.log.WithFields(logrus.Fields{
			"account":   inv.Account,
			"present":   inv.Count(models.StatePresent),
			"absent":    inv.Count(models.StateAbsent),
			"malformed": inv.Count(models.StateMalformed),
		})
		if inv.Count(models.StateMalformed) > 0 {
			entry.Warn("Account has malformed exports")
		} else {
			entry.Info("Account inventory")
		}
	}
	s.log.Infof("Inventory scan complete: %d accounts", len(report))
}
