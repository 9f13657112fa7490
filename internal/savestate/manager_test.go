package savestate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
	"github.com/MrSnakeDoc/lawdesk/internal/logger"
)

type memPersister struct {
	mu    sync.Mutex
	marks map[string][]domain.SavedMark
	docs  map[string][]domain.GeneratedDocument
	fail  bool
	saves int
}

func newMemPersister() *memPersister {
	return &memPersister{
		marks: make(map[string][]domain.SavedMark),
		docs:  make(map[string][]domain.GeneratedDocument),
	}
}

func (p *memPersister) LoadMarks(_ context.Context, sid string) ([]domain.SavedMark, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.marks[sid], nil
}

func (p *memPersister) SaveMarks(_ context.Context, sid string, marks []domain.SavedMark) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves++
	if p.fail {
		return errors.New("redis down")
	}
	p.marks[sid] = marks
	return nil
}

func (p *memPersister) LoadDocuments(_ context.Context, sid string) ([]domain.GeneratedDocument, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.docs[sid], nil
}

func (p *memPersister) SaveDocuments(_ context.Context, sid string, docs []domain.GeneratedDocument) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves++
	if p.fail {
		return errors.New("redis down")
	}
	p.docs[sid] = docs
	return nil
}

func entry(id, title string) domain.Law {
	return domain.Law{Listing: domain.Listing{
		ID: id, Title: title, Category: "rights", Type: "law", Jurisdiction: domain.Central,
	}}
}

func tickingClock() func() time.Time {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Minute)
	}
}

func newTestManager(p Persister) *Manager {
	m := NewManager("s1", p, logger.Nop())
	m.SetClock(tickingClock())
	return m
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil)
	m.Save(ctx, entry("a", "A"))

	before := m.List()

	assert.True(t, m.Toggle(ctx, entry("b", "B")))
	assert.True(t, m.IsSaved("b"))
	assert.False(t, m.Toggle(ctx, entry("b", "B")))
	assert.False(t, m.IsSaved("b"))

	after := m.List()
	require.Len(t, after, len(before))
	assert.Equal(t, before[0].EntryID, after[0].EntryID)
}

func TestSaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil)

	m.Save(ctx, entry("a", "A"))
	first := m.List()[0].SavedAt
	m.Save(ctx, entry("a", "A again"))

	marks := m.List()
	require.Len(t, marks, 1)
	assert.Equal(t, "A", marks[0].Title)
	assert.Equal(t, first, marks[0].SavedAt)
}

func TestUnsaveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	m := newTestManager(p)
	m.Save(ctx, entry("a", "A"))
	saves := p.saves

	m.Unsave(ctx, "missing")

	assert.Equal(t, 1, m.Count())
	assert.Equal(t, saves, p.saves, "no-op must not write")
}

func TestListIsInSaveOrder(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil)

	for _, id := range []string{"c", "a", "b"} {
		m.Toggle(ctx, entry(id, id))
	}
	m.Unsave(ctx, "a")
	m.Toggle(ctx, entry("a", "a"))

	var got []string
	for _, mark := range m.List() {
		got = append(got, mark.EntryID)
	}
	assert.Equal(t, []string{"c", "b", "a"}, got)

	marks := m.List()
	for i := 1; i < len(marks); i++ {
		assert.True(t, marks[i-1].SavedAt.Before(marks[i].SavedAt))
	}
}

func TestMarkIsDecoupledFromEntry(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil)

	e := entry("a", "Original")
	m.Toggle(ctx, e)
	e.Title = "Renamed in catalog"

	assert.Equal(t, "Original", m.List()[0].Title)
}

func TestPersistence(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	m := newTestManager(p)

	m.Toggle(ctx, entry("a", "A"))
	m.Toggle(ctx, entry("b", "B"))

	stored, err := p.LoadMarks(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, stored, 2)

	restored := NewManager("s1", p, logger.Nop())
	restored.Restore(stored)
	assert.True(t, restored.IsSaved("a"))
	assert.True(t, restored.IsSaved("b"))
	assert.Equal(t, m.List(), restored.List())
}

func TestPersistenceFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	p.fail = true
	m := newTestManager(p)

	assert.True(t, m.Toggle(ctx, entry("a", "A")))
	assert.True(t, m.IsSaved("a"), "in-memory state survives a failed write")
}

func TestRestoreSortsAndDeduplicates(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManager("s1", nil, logger.Nop())

	m.Restore([]domain.SavedMark{
		{EntryID: "b", SavedAt: t0.Add(2 * time.Hour)},
		{EntryID: "a", SavedAt: t0},
		{EntryID: "b", SavedAt: t0.Add(3 * time.Hour)},
	})

	marks := m.List()
	require.Len(t, marks, 2)
	assert.Equal(t, "a", marks[0].EntryID)
	assert.Equal(t, "b", marks[1].EntryID)
}

func TestConcurrentToggles(t *testing.T) {
	ctx := context.Background()
	m := NewManager("s1", nil, logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Toggle(ctx, entry("a", "A"))
			_ = m.List()
		}()
	}
	wg.Wait()

	// an even number of toggles leaves the entry unsaved
	assert.False(t, m.IsSaved("a"))
	assert.Equal(t, 0, m.Count())
}
