package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/spacedrep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func newTestReminder(t *testing.T, now time.Time, records ...corpus.Record) (*Reminder, *[]spacedrep.Status) {
	t.Helper()
	var got []spacedrep.Status
	st := corpus.NewStore(corpus.NewMemoryStorage(records...), nil)
	r := New(st, NotifierFunc(func(_ context.Context, s spacedrep.Status) error {
		got = append(got, s)
		return nil
	}), DefaultConfig(), nil)
	r.now = func() time.Time { return now }
	return r, &got
}

func TestCheck_NotifiesWhenDue(t *testing.T) {
	noon := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	future := corpus.AddDays(noon, 5)
	r, got := newTestReminder(t, noon,
		corpus.Record{TargetText: "ก", Category: "Char"},
		corpus.Record{TargetText: "ข", Category: "Char", Mastery: intp(2), NextDue: &future},
	)

	sent, err := r.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, sent)
	require.Len(t, *got, 1)
	assert.Equal(t, 1, (*got)[0].Due)
	assert.Equal(t, 2, (*got)[0].Total)
}

func TestCheck_NothingDue(t *testing.T) {
	noon := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	future := corpus.AddDays(noon, 1)
	r, got := newTestReminder(t, noon, corpus.Record{TargetText: "ก", Category: "Char", NextDue: &future})

	sent, err := r.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, *got)
}

func TestCheck_OutsideHours(t *testing.T) {
	night := time.Date(2024, 3, 10, 3, 0, 0, 0, time.Local)
	r, got := newTestReminder(t, night, corpus.Record{TargetText: "ก", Category: "Char"})

	sent, err := r.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, *got)
}

func TestCheck_LoadError(t *testing.T) {
	storage := corpus.NewMemoryStorage()
	storage.LoadErr = errors.New("locked")
	r := New(corpus.NewStore(storage, nil), NotifierFunc(func(context.Context, spacedrep.Status) error {
		t.Fatal("must not notify")
		return nil
	}), DefaultConfig(), nil)
	r.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local) }

	_, err := r.Check(context.Background())
	var perr *corpus.PersistenceError
	assert.ErrorAs(t, err, &perr)
}

func TestStart_RejectsZeroInterval(t *testing.T) {
	r := New(corpus.NewStore(corpus.NewMemoryStorage(), nil), NotifierFunc(nil), Config{}, nil)
	assert.Error(t, r.Start())
}

func TestStart_RunsImmediately(t *testing.T) {
	done := make(chan spacedrep.Status, 1)
	st := corpus.NewStore(corpus.NewMemoryStorage(corpus.Record{TargetText: "ก", Category: "Char"}), nil)
	cfg := DefaultConfig()
	cfg.StartHour, cfg.EndHour = 0, 23
	r := New(st, NotifierFunc(func(_ context.Context, s spacedrep.Status) error {
		select {
		case done <- s:
		default:
		}
		return nil
	}), cfg, nil)

	require.NoError(t, r.Start())
	defer r.Stop()

	select {
	case s := <-done:
		assert.Equal(t, 1, s.Due)
	case <-time.After(5 * time.Second):
		t.Fatal("reminder did not run")
	}
}
