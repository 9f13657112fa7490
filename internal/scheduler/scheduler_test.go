package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/lawdesk/internal/catalog"
	"github.com/MrSnakeDoc/lawdesk/internal/domain"
	"github.com/MrSnakeDoc/lawdesk/internal/logger"
	"github.com/MrSnakeDoc/lawdesk/internal/session"
	redisstore "github.com/MrSnakeDoc/lawdesk/internal/store/redis"
)

const smallCatalog = `
laws:
  central:
    - id: rti-act-2005
      title: Right to Information Act, 2005
      preview: Ask any public authority for information.
      category: rights
      type: law
cases: {}
templates: []
`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestCatalogReloader_Reload(t *testing.T) {
	path := writeCatalog(t, smallCatalog)
	store := catalog.NewStore()

	var reloads atomic.Int32
	cr := NewCatalogReloader(path, store, func() { reloads.Add(1) }, logger.Nop(), 0, nil)

	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if store.Count() != 1 {
		t.Errorf("Count() = %d, want 1", store.Count())
	}
	if reloads.Load() != 1 {
		t.Errorf("onReload called %d times, want 1", reloads.Load())
	}

	// A broken file must not replace the serving catalog.
	if err := os.WriteFile(path, []byte("laws: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := cr.Reload(context.Background()); err == nil {
		t.Fatal("Reload() of broken file should fail")
	}
	if _, ok := store.GetByID("rti-act-2005"); !ok {
		t.Error("previous catalog should still serve after a failed reload")
	}
	if reloads.Load() != 1 {
		t.Errorf("onReload called after failure")
	}
}

func TestCatalogReloader_Embedded(t *testing.T) {
	store := catalog.NewStore()
	cr := NewCatalogReloader("", store, nil, logger.Nop(), 0, nil)

	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() of embedded catalog error = %v", err)
	}
	if _, ok := store.GetByID("rti-act-2005"); !ok {
		t.Error("embedded catalog should contain the RTI Act")
	}
	if len(store.Templates()) == 0 {
		t.Error("embedded catalog should ship templates")
	}
}

func TestCatalogReloader_ManualTrigger(t *testing.T) {
	path := writeCatalog(t, smallCatalog)
	store := catalog.NewStore()
	trigger := make(chan struct{})

	reloaded := make(chan struct{}, 4)
	cr := NewCatalogReloader(path, store, func() { reloaded <- struct{}{} }, logger.Nop(), 0, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := cr.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer cr.Stop()
	<-reloaded // initial load

	trigger <- struct{}{}
	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("manual trigger did not reload")
	}
}

func TestCatalogReloader_StartFailsOnBadFile(t *testing.T) {
	cr := NewCatalogReloader(filepath.Join(t.TempDir(), "missing.yaml"), catalog.NewStore(), nil, logger.Nop(), time.Minute, nil)
	if err := cr.Start(context.Background()); err == nil {
		t.Fatal("Start() with a missing file should fail")
	}
}

func testRegistry(t *testing.T, store session.Store, now func() time.Time) *session.Registry {
	t.Helper()
	cat := catalog.NewStore()
	cr := NewCatalogReloader(writeCatalog(t, smallCatalog), cat, nil, logger.Nop(), 0, nil)
	if err := cr.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	return session.NewRegistry(cat, store, logger.Nop(), session.Options{Now: now})
}

func TestSessionCollector_Collect(t *testing.T) {
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	current := base
	reg := testRegistry(t, nil, func() time.Time { return current })

	ctx := context.Background()
	stale := reg.Create(ctx)
	current = base.Add(90 * time.Minute)
	fresh := reg.Create(ctx)

	sc := NewSessionCollector(reg, logger.Nop(), time.Hour, 2*time.Hour)
	sc.now = func() time.Time { return base.Add(150 * time.Minute) }

	if got := sc.Collect(ctx); got != 1 {
		t.Fatalf("Collect() evicted %d, want 1", got)
	}
	if _, ok := reg.Get(ctx, stale.ID); ok {
		t.Error("stale session should be evicted")
	}
	if _, ok := reg.Get(ctx, fresh.ID); !ok {
		t.Error("fresh session should survive")
	}
}

func TestSessionCollector_NonPositiveInterval(t *testing.T) {
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	reg := testRegistry(t, nil, func() time.Time { return base })
	reg.Create(context.Background())

	for _, interval := range []time.Duration{0, -time.Minute} {
		sc := NewSessionCollector(reg, logger.Nop(), interval, time.Hour)
		sc.now = func() time.Time { return base.Add(2 * time.Hour) }

		if err := sc.Start(context.Background()); err != nil {
			t.Fatalf("Start(%v) error = %v", interval, err)
		}
		sc.Stop()
	}
	if reg.Count() != 0 {
		t.Errorf("Count() = %d, want the idle session collected on start", reg.Count())
	}
}

func TestSessionCollector_DefaultThreshold(t *testing.T) {
	sc := NewSessionCollector(nil, logger.Nop(), time.Hour, 0)
	if sc.threshold != DefaultIdleThreshold {
		t.Errorf("threshold = %v, want %v", sc.threshold, DefaultIdleThreshold)
	}
}

func TestSessionSyncer_Sync(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()
	store := redisstore.NewStore(client, time.Hour)

	ctx := context.Background()
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := store.TrackSession(ctx, domain.SessionInfo{ID: "s1", CreatedAt: now, LastActive: now}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveMarks(ctx, "s1", []domain.SavedMark{{EntryID: "rti-act-2005", Kind: domain.KindLaw, SavedAt: now}}); err != nil {
		t.Fatal(err)
	}

	reg := testRegistry(t, store, func() time.Time { return now })
	if err := NewSessionSyncer(store, reg, logger.Nop()).Sync(ctx); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
	s, ok := reg.Get(ctx, "s1")
	if !ok {
		t.Fatal("synced session missing")
	}
	if !s.Saved.IsSaved("rti-act-2005") {
		t.Error("saved marks were not restored")
	}
}
