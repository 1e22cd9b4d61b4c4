package jobs

import (
	"fmt"
	"time"

	"ganeshai/internal/models"
	"ganeshai/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the periodic background jobs. Currently that is a single
// job refreshing the system-wide stats snapshot served on the admin overview.
type Scheduler struct {
	cron      *cron.Cron
	userRepo  *repository.UserRepository
	chatRepo  *repository.ChatRepository
	ledgers   *repository.LedgerRepository
	statsRepo *repository.StatsRepository
}

func NewScheduler(userRepo *repository.UserRepository, chatRepo *repository.ChatRepository, ledgers *repository.LedgerRepository, statsRepo *repository.StatsRepository) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		userRepo:  userRepo,
		chatRepo:  chatRepo,
		ledgers:   ledgers,
		statsRepo: statsRepo,
	}
}

// Start registers the stats job at the given interval and runs it once
// immediately so the snapshot is never empty after boot.
func (s *Scheduler) Start(interval time.Duration) error {
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.refreshStats); err != nil {
		return fmt.Errorf("jobs: %w", err)
	}
	go s.refreshStats()
	s.cron.Start()
	logrus.WithField("interval", interval).Info("stats scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) refreshStats() {
	users, err := s.userRepo.Count()
	if err != nil {
		logrus.WithError(err).Warn("stats: user count failed")
		return
	}
	chats, err := s.chatRepo.Count()
	if err != nil {
		logrus.WithError(err).Warn("stats: chat count failed")
		return
	}
	payouts, err := s.ledgers.TotalPayouts()
	if err != nil {
		logrus.WithError(err).Warn("stats: payout sum failed")
		return
	}

	stat := &models.SystemStat{
		TotalUsers:   users,
		TotalChats:   chats,
		TotalPayouts: payouts,
		UpdatedAt:    time.Now(),
	}
	if err := s.statsRepo.Upsert(stat); err != nil {
		logrus.WithError(err).Warn("stats: snapshot upsert failed")
		return
	}
	logrus.WithFields(logrus.Fields{
		"users": users, "chats": chats, "payouts": payouts.StringFixed(2),
	}).Debug("stats snapshot refreshed")
}
