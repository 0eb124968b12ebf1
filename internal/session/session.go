// Package session drives one drill: it selects an item, presents a round,
// grades the answer, updates the schedule and persists the corpus.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/grading"
	"github.com/abhisek/lingodrill/internal/quiz"
	"github.com/abhisek/lingodrill/internal/spacedrep"
	"github.com/abhisek/lingodrill/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventRecorder receives answer and session events. store.EventRepo
// satisfies it.
type EventRecorder interface {
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
}

// Options configures a Session. Store and Grader are required.
type Options struct {
	Store  *corpus.Store
	Grader *grading.Grader

	// Rand drives selection, modality and option order. Nil uses a
	// randomly seeded source.
	Rand *rand.Rand

	// Events is optional.
	Events EventRecorder

	// Now defaults to time.Now.
	Now func() time.Time

	Log *zap.Logger
}

// Session is the drill state machine. It is not safe for concurrent use;
// one goroutine drives it.
type Session struct {
	id        string
	store     *corpus.Store
	grader    *grading.Grader
	scheduler *spacedrep.Scheduler
	rng       *rand.Rand
	events    EventRecorder
	now       func() time.Time
	log       *zap.Logger

	phase       Phase
	halted      error
	round       *quiz.Round
	result      *grading.Result
	excludedID  string
	presentedAt time.Time
	stats       Stats
}

// New creates a session in PhaseSelecting.
func New(opts Options) *Session {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		id:        id,
		store:     opts.Store,
		grader:    opts.Grader,
		scheduler: spacedrep.NewScheduler(opts.Rand),
		rng:       opts.Rand,
		events:    opts.Events,
		now:       opts.Now,
		log:       opts.Log.With(zap.String("session", id)),
		phase:     PhaseSelecting,
		stats:     newStats(opts.Now()),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Round returns the current round, or nil in PhaseSelecting.
func (s *Session) Round() *quiz.Round { return s.round }

// Result returns the last result, or nil outside PhaseGraded.
func (s *Session) Result() *grading.Result { return s.result }

// Halted returns the error that stopped the session, if any.
func (s *Session) Halted() error { return s.halted }

// Stats returns the session counters.
func (s *Session) Stats() Stats { return s.stats }

// Status summarizes the corpus review state as of now.
func (s *Session) Status() spacedrep.Status {
	return spacedrep.Summarize(s.store.Items(), s.now())
}

// Start records the session start event.
func (s *Session) Start(ctx context.Context) {
	due := len(spacedrep.DueItems(s.store.Items(), s.now()))
	s.log.Info("session started", zap.Int("items", s.store.Len()), zap.Int("due", due))
	s.recordSession(ctx, "start", due)
}

// End records the session end event and returns the summary.
func (s *Session) End(ctx context.Context) Summary {
	sum := BuildSummary(s.stats, s.now())
	s.log.Info("session ended",
		zap.Int("served", s.stats.Served),
		zap.Int("correct", s.stats.Correct),
		zap.Duration("duration", sum.Duration))
	s.recordSession(ctx, "end", 0)
	return sum
}

// Next selects the next item and presents a round for it.
func (s *Session) Next(ctx context.Context) (*quiz.Round, error) {
	if s.halted != nil {
		return nil, s.halted
	}
	if s.phase != PhaseSelecting {
		return nil, ErrRoundInFlight
	}

	items := s.store.Items()
	sel, err := s.scheduler.SelectNext(items, s.excludedID, s.now())
	if err != nil {
		if errors.Is(err, spacedrep.ErrEmptyCorpus) {
			s.halted = err
			s.log.Error("session halted", zap.Error(err))
		}
		return nil, err
	}

	round, err := quiz.NewRound(s.rng, items, sel)
	if err != nil {
		return nil, fmt.Errorf("build round for %q: %w", sel.Item.ID(), err)
	}

	s.round = round
	s.result = nil
	s.phase = PhasePresenting
	s.presentedAt = s.now()
	s.stats.Served++
	s.log.Debug("round presented",
		zap.String("item", round.Item.ID()),
		zap.String("modality", string(round.Modality)),
		zap.String("pool", string(round.Pool)),
		zap.Int("due", round.DueCount))
	return round, nil
}

// Submit grades resp against the current round. A response the grader
// cannot use leaves the round presented. Otherwise the session moves to
// PhaseGraded; a failed flush still returns the result alongside a
// wrapped *corpus.PersistenceError.
func (s *Session) Submit(ctx context.Context, resp grading.Response) (*grading.Result, error) {
	if s.halted != nil {
		return nil, s.halted
	}
	if s.phase != PhasePresenting {
		return nil, ErrNotPresenting
	}

	r := s.round
	res, err := s.grader.Grade(ctx, r, resp)
	if err != nil {
		return nil, err
	}

	before := r.Item
	after := before
	var flushErr error
	if res.Faulted() {
		s.stats.Faulted++
		s.log.Warn("round faulted, schedule unchanged",
			zap.String("item", r.Item.ID()),
			zap.String("fault", string(res.Fault)))
	} else {
		growth := spacedrep.GrowthStandard
		if r.Modality.Family() == quiz.FamilyHandwriting {
			growth = spacedrep.GrowthNarrow
		}
		today := s.now()
		after, err = s.store.Update(r.Item.ID(), func(it *corpus.Item) {
			spacedrep.Apply(it, spacedrep.Outcome{Correct: res.Correct, Growth: growth}, today)
		})
		if err != nil {
			return nil, fmt.Errorf("update %q: %w", r.Item.ID(), err)
		}
		s.stats.record(after.Category, res.Correct)

		if err := s.store.Flush(ctx); err != nil {
			flushErr = fmt.Errorf("persist answer: %w", err)
		}
	}

	s.result = res
	s.phase = PhaseGraded
	s.recordAnswer(ctx, r, res, before, after)
	return res, flushErr
}

// Advance acknowledges the result and returns to PhaseSelecting. The item
// just asked is skipped by the next selection when possible.
func (s *Session) Advance() error {
	if s.halted != nil {
		return s.halted
	}
	if s.phase != PhaseGraded {
		return ErrNotGraded
	}
	s.excludedID = s.round.Item.ID()
	s.round = nil
	s.result = nil
	s.phase = PhaseSelecting
	return nil
}

// RetryFlush saves the whole in-memory corpus again.
func (s *Session) RetryFlush(ctx context.Context) error {
	if err := s.store.Flush(ctx); err != nil {
		return fmt.Errorf("persist answer: %w", err)
	}
	return nil
}

// Reload reads the corpus back from storage and restarts selection with
// no excluded item. A failed load keeps the previous corpus.
func (s *Session) Reload(ctx context.Context) error {
	if err := s.store.Load(ctx, s.now()); err != nil {
		return fmt.Errorf("reload corpus: %w", err)
	}
	s.round = nil
	s.result = nil
	s.excludedID = ""
	s.halted = nil
	s.phase = PhaseSelecting
	s.log.Info("corpus reloaded", zap.Int("items", s.store.Len()))
	return nil
}

func (s *Session) recordAnswer(ctx context.Context, r *quiz.Round, res *grading.Result, before, after corpus.Item) {
	if s.events == nil {
		return
	}
	err := s.events.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:     s.id,
		Item:          r.Item.ID(),
		Category:      string(r.Item.Category),
		Modality:      string(r.Modality),
		Pool:          string(r.Pool),
		LearnerAnswer: res.Input,
		Correct:       res.Correct,
		Score:         res.Score,
		Fault:         string(res.Fault),
		MasteryBefore: before.Mastery,
		MasteryAfter:  after.Mastery,
		NextDue:       corpus.FormatDate(after.NextDue),
		TimeMs:        int(s.now().Sub(s.presentedAt).Milliseconds()),
	})
	if err != nil {
		s.log.Warn("record answer event", zap.Error(err))
	}
}

func (s *Session) recordSession(ctx context.Context, action string, due int) {
	if s.events == nil {
		return
	}
	err := s.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:      s.id,
		Action:         action,
		ItemsServed:    s.stats.Served,
		CorrectAnswers: s.stats.Correct,
		DurationSecs:   int(s.now().Sub(s.stats.StartedAt).Seconds()),
		DueAtStart:     due,
	})
	if err != nil {
		s.log.Warn("record session event", zap.Error(err))
	}
}
