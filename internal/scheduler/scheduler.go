package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/jmhodges/clock"
	"go.uber.org/zap"

	"github.com/saymealien/bloodpressurebot/internal/domain"
	"github.com/saymealien/bloodpressurebot/internal/metrics"
)

const (
	// DefaultInterval is the polling period between ticks.
	DefaultInterval = 30 * time.Second
	// MatchWindow is how close to a slot the local time must be to fire.
	MatchWindow = time.Minute

	ReminderText = "⏰ Time to measure your blood pressure! 💓\n\nUse the 'Add' button to record your measurement."
)

// ErrTickTooCoarse is returned when the interval could let a slot slip
// between two ticks.
var ErrTickTooCoarse = errors.New("tick interval must be at most half the match window")

// Sender is a minimal interface the scheduler needs to send a text message.
// telegram.Router implements this (method: SendMessage).
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// SettingsLister yields every user that has at least one reminder slot.
type SettingsLister interface {
	ListWithReminders(ctx context.Context) ([]domain.Settings, error)
}

// Scheduler periodically checks reminder slots against each user's local time
// and sends at most one reminder per slot per local calendar day.
type Scheduler struct {
	repo     SettingsLister
	log      *zap.Logger
	sender   Sender
	ledger   *Ledger
	clock    clock.Clock
	metrics  *metrics.Metrics
	interval time.Duration
	window   time.Duration
	text     string
}

type Option func(*Scheduler)

func WithClock(c clock.Clock) Option        { return func(s *Scheduler) { s.clock = c } }
func WithInterval(d time.Duration) Option   { return func(s *Scheduler) { s.interval = d } }
func WithLedger(l *Ledger) Option           { return func(s *Scheduler) { s.ledger = l } }
func WithMetrics(m *metrics.Metrics) Option { return func(s *Scheduler) { s.metrics = m } }

// New creates a Scheduler polling every DefaultInterval unless overridden.
func New(repo SettingsLister, log *zap.Logger, sender Sender, opts ...Option) (*Scheduler, error) {
	s := &Scheduler{
		repo:     repo,
		log:      log,
		sender:   sender,
		clock:    clock.New(),
		interval: DefaultInterval,
		window:   MatchWindow,
		text:     ReminderText,
	}
	for _, o := range opts {
		o(s)
	}
	if s.ledger == nil {
		s.ledger = NewLedger()
	}
	if s.interval <= 0 || s.interval > s.window/2 {
		return nil, ErrTickTooCoarse
	}
	return s, nil
}

// Run starts the loop until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("scheduler started", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick performs one scheduling cycle over all users with reminders.
func (s *Scheduler) tick(ctx context.Context) {
	started := s.clock.Now()
	defer func() { s.metrics.ObserveTick(s.clock.Now().Sub(started)) }()

	users, err := s.repo.ListWithReminders(ctx)
	if err != nil {
		s.log.Error("ListWithReminders failed", zap.Error(err))
		s.metrics.ObserveStoreError("list_reminders")
		return
	}
	now := started.UTC()
	for _, u := range users {
		if ctx.Err() != nil {
			return
		}
		s.checkUser(now, u)
	}
}

func (s *Scheduler) checkUser(now time.Time, u domain.Settings) {
	local, err := domain.InLocation(now, u.Timezone)
	if err != nil {
		s.log.Warn("invalid timezone, falling back to UTC",
			zap.Int64("user_id", u.UserID), zap.String("tz", u.Timezone), zap.Error(err))
	}
	today := domain.LocalDate(local)

	for _, raw := range u.Reminders {
		slot, err := domain.ParseSlot(raw)
		if err != nil {
			s.log.Warn("skipping malformed reminder slot",
				zap.Int64("user_id", u.UserID), zap.String("slot", raw), zap.Error(err))
			continue
		}
		if !domain.WithinWindow(local, domain.TargetToday(local, slot), s.window) {
			continue
		}
		if s.ledger.SentOn(u.UserID, raw) == today {
			continue
		}

		// Only confirmed deliveries are recorded; a failure is retried on the
		// next tick that still falls inside the window.
		if err := s.sender.SendMessage(u.UserID, s.text); err != nil {
			s.log.Error("send reminder failed",
				zap.Int64("user_id", u.UserID), zap.String("slot", raw), zap.Error(err))
			s.metrics.ObserveReminder("failed")
			continue
		}
		s.ledger.Mark(u.UserID, raw, today)
		s.metrics.ObserveReminder("sent")
		s.log.Info("reminder sent",
			zap.Int64("user_id", u.UserID), zap.String("slot", raw), zap.String("date", today))
	}
}
