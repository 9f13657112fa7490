package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, ttl), mr
}

var t0 = time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

func TestKeys(t *testing.T) {
	assert.Equal(t, "lawdesk:session:abc", SessionKey("abc"))
	assert.Equal(t, "lawdesk:saved:abc", SavedKey("abc"))
	assert.Equal(t, "lawdesk:documents:abc", DocumentsKey("abc"))

	id, err := ExtractSessionID("lawdesk:session:abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	_, err = ExtractSessionID("lawdesk:saved:abc")
	assert.Error(t, err)
	_, err = ExtractSessionID("lawdesk:session:")
	assert.Error(t, err)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Hour)

	info := domain.SessionInfo{ID: "s1", CreatedAt: t0, LastActive: t0}
	require.NoError(t, s.TrackSession(ctx, info))
	assert.True(t, mr.Exists(SessionKey("s1")))

	got, found, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "s1", got.ID)
	assert.True(t, t0.Equal(got.CreatedAt))

	list, err := s.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	forgot, err := s.ForgetSession(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, forgot)
	_, found, err = s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, found)

	list, err = s.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	forgot, err = s.ForgetSession(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, forgot)
}

func TestMarksRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Hour)

	marks := []domain.SavedMark{
		{EntryID: "rti", Kind: domain.KindLaw, Title: "RTI Act", Category: "rights", SavedAt: t0},
		{EntryID: "case-1", Kind: domain.KindCase, Title: "Refund", Category: "consumer", SavedAt: t0.Add(time.Minute)},
	}
	require.NoError(t, s.SaveMarks(ctx, "s1", marks))

	got, err := s.LoadMarks(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "rti", got[0].EntryID)
	assert.Equal(t, domain.KindCase, got[1].Kind)

	require.NoError(t, s.SaveMarks(ctx, "s1", nil))
	assert.False(t, mr.Exists(SavedKey("s1")))

	got, err = s.LoadMarks(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDocumentsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, time.Hour)

	docs := []domain.GeneratedDocument{{
		ID: "d1", TemplateID: "rent", Title: "Rent Agreement", Body: "...",
		Values: map[string]string{"tenant": "B"}, Stamped: true, StampReference: "GRN-1", CreatedAt: t0,
	}}
	require.NoError(t, s.SaveDocuments(ctx, "s1", docs))

	got, err := s.LoadDocuments(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Values["tenant"])
	assert.True(t, got[0].Stamped)
}

func TestExpiredSessionsArePruned(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Hour)

	require.NoError(t, s.SaveMarks(ctx, "old", []domain.SavedMark{{EntryID: "rti", SavedAt: t0}}))
	require.NoError(t, s.TrackSession(ctx, domain.SessionInfo{ID: "old", CreatedAt: t0}))

	mr.FastForward(30 * time.Minute)
	require.NoError(t, s.TrackSession(ctx, domain.SessionInfo{ID: "fresh", CreatedAt: t0}))
	mr.FastForward(45 * time.Minute)

	assert.False(t, mr.Exists(SavedKey("old")), "data shares the session TTL")

	list, err := s.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "fresh", list[0].ID)

	members, err := mr.SMembers(AllSessionsKey())
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, members)
}

func TestTrackSessionExtendsDataTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Hour)

	require.NoError(t, s.SaveMarks(ctx, "s1", []domain.SavedMark{{EntryID: "rti", SavedAt: t0}}))
	mr.FastForward(50 * time.Minute)
	require.NoError(t, s.TrackSession(ctx, domain.SessionInfo{ID: "s1"}))
	mr.FastForward(50 * time.Minute)

	assert.True(t, mr.Exists(SavedKey("s1")))
}

func TestStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Hour)
	mr.Close()

	assert.Error(t, s.Ping(ctx))
	assert.Error(t, s.SaveMarks(ctx, "s1", []domain.SavedMark{{EntryID: "x"}}))
	_, err := s.LoadDocuments(ctx, "s1")
	assert.Error(t, err)
}
