package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"FundScope/internal/engine"
	"FundScope/internal/format"
	"FundScope/internal/recorder"
	"FundScope/internal/store"
)

// Scheduler runs the periodic snapshot task: recompute every user's portfolio
// and append the results to the history recorder.
type Scheduler struct {
	cron    *cron.Cron
	service *engine.Service
	store   store.Store
	rec     recorder.Recorder
	log     zerolog.Logger
}

func New(service *engine.Service, st store.Store, rec recorder.Recorder, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		service: service,
		store:   st,
		rec:     rec,
		log:     log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the snapshot task on the given cron expression.
func (s *Scheduler) Register(snapshotCron string) error {
	if _, err := s.cron.AddFunc(snapshotCron, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// RunSnapshotNow executes the snapshot task immediately (manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunSnapshotNow() {
	s.snapshotTask()
}

func (s *Scheduler) snapshotTask() {
	users, err := s.store.ListUsers()
	if err != nil {
		s.log.Error().Err(err).Msg("snapshot: list users")
		return
	}
	s.log.Info().Int("users", len(users)).Msg("running portfolio snapshot")

	for _, userID := range users {
		view, err := s.service.PortfolioView(userID, "")
		if err != nil {
			// A bad deal row fails that user's snapshot only.
			s.log.Error().Err(err).Str("user", userID).Msg("snapshot: compute portfolio")
			continue
		}

		if err := s.rec.RecordPortfolio(userID, view.Summary); err != nil {
			s.log.Error().Err(err).Str("user", userID).Msg("snapshot: record portfolio")
		}
		if err := s.rec.RecordScenarioRun(userID, view.Scenarios); err != nil {
			s.log.Error().Err(err).Str("user", userID).Msg("snapshot: record scenarios")
		}

		s.log.Info().
			Str("user", userID).
			Msg("snapshot recorded\n" + format.PortfolioReport(view))
	}
}
