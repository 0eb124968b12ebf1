// Package reminder periodically checks the corpus and announces due items.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/spacedrep"
	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Default active window, in local hours.
const (
	DefaultStartHour = 8
	DefaultEndHour   = 22
)

// Source is reloaded on every check so edits made by another process are
// seen. *corpus.Store satisfies it.
type Source interface {
	Load(ctx context.Context, today time.Time) error
	Items() []corpus.Item
}

// Notifier announces that items are due.
type Notifier interface {
	Notify(ctx context.Context, st spacedrep.Status) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, st spacedrep.Status) error

func (f NotifierFunc) Notify(ctx context.Context, st spacedrep.Status) error { return f(ctx, st) }

// Config configures the reminder job.
type Config struct {
	Every time.Duration

	// Reminders fire only when StartHour <= hour <= EndHour.
	StartHour int
	EndHour   int

	// Timeout bounds one check.
	Timeout time.Duration
}

// DefaultConfig returns an hourly reminder during the day.
func DefaultConfig() Config {
	return Config{
		Every:     time.Hour,
		StartHour: DefaultStartHour,
		EndHour:   DefaultEndHour,
		Timeout:   30 * time.Second,
	}
}

// Reminder runs the periodic check.
type Reminder struct {
	scheduler *gocron.Scheduler
	src       Source
	notifier  Notifier
	cfg       Config
	now       func() time.Time
	log       *zap.Logger
}

// New creates a reminder. It does nothing until Start.
func New(src Source, n Notifier, cfg Config, log *zap.Logger) *Reminder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reminder{
		scheduler: gocron.NewScheduler(time.Local),
		src:       src,
		notifier:  n,
		cfg:       cfg,
		now:       time.Now,
		log:       log,
	}
}

// Start schedules the check and runs it in the background. The first check
// runs immediately.
func (r *Reminder) Start() error {
	if r.cfg.Every <= 0 {
		return fmt.Errorf("reminder interval must be positive, got %s", r.cfg.Every)
	}
	_, err := r.scheduler.Every(r.cfg.Every).SingletonMode().Do(r.tick)
	if err != nil {
		return fmt.Errorf("schedule reminder: %w", err)
	}
	r.scheduler.StartAsync()
	r.log.Info("reminder started", zap.Duration("every", r.cfg.Every))
	return nil
}

// Stop terminates the scheduler.
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

func (r *Reminder) tick() {
	ctx := context.Background()
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}
	if _, err := r.Check(ctx); err != nil {
		r.log.Error("reminder check failed", zap.Error(err))
	}
}

// Check reloads the corpus and notifies when items are due inside the
// active window. It reports whether a notification was sent.
func (r *Reminder) Check(ctx context.Context) (bool, error) {
	now := r.now()
	if h := now.Hour(); h < r.cfg.StartHour || h > r.cfg.EndHour {
		r.log.Debug("outside reminder hours, skipping",
			zap.Int("hour", h), zap.Int("start", r.cfg.StartHour), zap.Int("end", r.cfg.EndHour))
		return false, nil
	}

	if err := r.src.Load(ctx, now); err != nil {
		return false, err
	}
	st := spacedrep.Summarize(r.src.Items(), now)
	if st.Due == 0 {
		return false, nil
	}
	if err := r.notifier.Notify(ctx, st); err != nil {
		return false, fmt.Errorf("notify: %w", err)
	}
	return true, nil
}
