// services/scheduler.go
package services

import (
	"context"
	"time"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/stores"
	"salondesk-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler runs the daily reminder sweep: every client due within the
// next week, plus everyone already overdue.
type Scheduler struct {
	clients   *stores.ClientStore
	reminders *ReminderService
	cron      *cron.Cron
}

func NewScheduler(clients *stores.ClientStore, reminders *ReminderService) *Scheduler {
	return &Scheduler{
		clients:   clients,
		reminders: reminders,
		cron:      cron.New(),
	}
}

// Start registers the daily 9 AM job and launches the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("0 9 * * *", func() {
		s.RunDailySweep(context.Background())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Msg("Reminder scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunDailySweep fetches due and overdue clients and sends reminders
// over the configured default channels. If the roster cannot be
// fetched, nothing is attempted.
func (s *Scheduler) RunDailySweep(ctx context.Context) {
	log.Info().Msg("Starting daily reminder sweep")

	now := time.Now()
	candidates, err := DueAndOverdueClients(s.clients, now)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch reminder candidates")
		return
	}

	report := s.reminders.RunBulk(ctx, candidates, config.ReminderChannels())
	log.Info().
		Int("candidates", len(candidates)).
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Msg("Daily reminder sweep completed")
}

// DueAndOverdueClients returns overdue clients followed by those due
// within the next week, each group soonest first.
func DueAndOverdueClients(store *stores.ClientStore, now time.Time) ([]*models.Client, error) {
	overdue, err := store.FindOverdue(now)
	if err != nil {
		return nil, err
	}
	// Window starts at the current instant so no client appears in
	// both the overdue and due lists.
	end := utils.EndOfDay(now.AddDate(0, 0, DueSoonWindowDays))
	due, err := store.FindByDueWindow(now, end)
	if err != nil {
		return nil, err
	}
	return append(overdue, due...), nil
}
