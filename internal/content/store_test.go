package content

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/edutalk/internal/codec"
	"github.com/dmitrijs2005/edutalk/internal/common"
	"github.com/dmitrijs2005/edutalk/internal/dbx"
	"github.com/dmitrijs2005/edutalk/internal/events"
	"github.com/dmitrijs2005/edutalk/internal/ids"
	"github.com/dmitrijs2005/edutalk/internal/metrics"
	"github.com/dmitrijs2005/edutalk/internal/models"
	"github.com/dmitrijs2005/edutalk/internal/repositories/records"
	"github.com/dmitrijs2005/edutalk/internal/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2025, 3, 1, 12, 30, 45, 987654321, time.UTC)

type fixture struct {
	db  *sql.DB
	reg *prometheus.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &fixture{db: db}
}

func (f *fixture) store(t *testing.T, factory records.Factory) *Store {
	t.Helper()
	f.reg = prometheus.NewRegistry()
	m, err := metrics.New(f.reg)
	require.NoError(t, err)
	s := New(f.db, Options{
		Metrics: m,
		NewID:   ids.Sequence("id"),
		Records: factory,
		Now:     func() time.Time { return fixedNow },
	})
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func (f *fixture) raw(t *testing.T) []byte {
	t.Helper()
	v, err := records.NewSQLiteRepository(f.db).Get(context.Background(), records.KeyCommunityFeed)
	require.NoError(t, err)
	return v
}

func (f *fixture) persisted(t *testing.T) []models.CommunityPost {
	t.Helper()
	posts, err := codec.DecodeFeed(f.raw(t))
	require.NoError(t, err)
	return posts
}

func (f *fixture) summary(t *testing.T) []string {
	t.Helper()
	lines, err := metrics.Summary(f.reg)
	require.NoError(t, err)
	return lines
}

func TestInitialize_SeedsFreshFeed(t *testing.T) {
	f := newFixture(t)
	s := f.store(t, nil)

	posts := s.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "1", posts[0].ID)
	assert.Equal(t, "Alex Student", posts[0].AuthorName)
	assert.Equal(t, 5, posts[0].LikeCount)
	assert.Empty(t, posts[0].Replies)
	assert.Equal(t, "2", posts[1].ID)
	assert.Equal(t, "Maria Rodriguez", posts[1].AuthorName)
	assert.Equal(t, 3, posts[1].LikeCount)
	assert.Empty(t, posts[1].Replies)

	if diff := cmp.Diff(posts, f.persisted(t)); diff != "" {
		t.Fatalf("persisted seed mismatch (-want +got):\n%s", diff)
	}
}

func TestInitialize_LoadsExistingFeedWithoutReseeding(t *testing.T) {
	f := newFixture(t)
	s := f.store(t, nil)
	ctx := context.Background()

	_, err := s.AddPost(ctx, "u1", "Alex", "Hello", "first")
	require.NoError(t, err)
	require.NoError(t, s.AddReply(ctx, "1", "u1", "Alex", "thanks"))
	want := s.Posts()

	reopened := f.store(t, nil)
	if diff := cmp.Diff(want, reopened.Posts()); diff != "" {
		t.Fatalf("reloaded feed mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, fixedNow.Equal(reopened.Posts()[0].CreatedAt))
}

func TestInitialize_CorruptFeedIsReseeded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, records.NewSQLiteRepository(f.db).Set(ctx, records.KeyCommunityFeed, []byte(`{"schema":"community-feed","version":2,"data":[]}`)))

	s := f.store(t, nil)

	require.Len(t, s.Posts(), 2)
	assert.Len(t, f.persisted(t), 2)
	assert.Contains(t, f.summary(t), `edutalk_storage_fallbacks_total{record="community-feed"} 1`)
}

func TestInitialize_MigratesLegacyFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	legacy := `[{"id":"7","userId":"u","userName":"Kim","title":"Hi","content":"there","timestamp":"2024-02-01T08:00:00.000Z","replies":[],"likes":2}]`
	require.NoError(t, records.NewSQLiteRepository(f.db).Set(ctx, records.KeyCommunityFeed, []byte(legacy)))

	s := f.store(t, nil)

	posts := s.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "Kim", posts[0].AuthorName)
	assert.Equal(t, 2, posts[0].LikeCount)
}

func TestCatalogues(t *testing.T) {
	s := newFixture(t).store(t, nil)

	sch := s.Scholarships()
	require.Len(t, sch, 4)
	assert.Equal(t, "Federal Pell Grant", sch[0].Title)
	assert.Equal(t, models.ProviderGovernment, sch[0].Provider)
	assert.Equal(t, "Up to $7,395", sch[0].Amount)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), sch[0].Deadline)
	assert.Equal(t, models.ProviderNonProfit, sch[2].Provider)
	assert.Equal(t, "STEM", sch[3].Category)

	courses := s.Courses()
	require.Len(t, courses, 4)
	assert.Equal(t, "Introduction to Computer Science", courses[0].CourseTitle)
	assert.Equal(t, models.LevelAdvanced, courses[3].Level)
	assert.InDelta(t, 4.9, courses[3].Rating, 1e-9)
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := newFixture(t).store(t, nil)
	ctx := context.Background()
	require.NoError(t, s.AddReply(ctx, "1", "u1", "Alex", "first"))

	sch := s.Scholarships()
	sch[0].Title = "changed"
	sch[0].EligibilityCriteria[0] = "changed"
	assert.Equal(t, "Federal Pell Grant", s.Scholarships()[0].Title)
	assert.Equal(t, "U.S. citizen or eligible non-citizen", s.Scholarships()[0].EligibilityCriteria[0])

	posts := s.Posts()
	posts[0].LikeCount = 100
	posts[0].Replies[0].Content = "changed"
	p, err := s.Post("1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.LikeCount)
	assert.Equal(t, "first", p.Replies[0].Content)
}

func TestAddPostThenThreeLikes(t *testing.T) {
	f := newFixture(t)
	s := f.store(t, nil)
	ctx := context.Background()

	post, err := s.AddPost(ctx, "u1", "Alex", "Hello", "first post")
	require.NoError(t, err)
	assert.Equal(t, "id-1", post.ID)
	assert.Equal(t, 0, post.LikeCount)
	assert.Empty(t, post.Replies)
	assert.True(t, fixedNow.Equal(post.CreatedAt))

	for i := 0; i < 3; i++ {
		require.NoError(t, s.LikePost(ctx, post.ID))
	}

	posts := s.Posts()
	require.Len(t, posts, 3)
	assert.Equal(t, post.ID, posts[0].ID)
	assert.Equal(t, 3, posts[0].LikeCount)

	stored := f.persisted(t)
	require.Len(t, stored, 3)
	assert.Equal(t, post.ID, stored[0].ID)
	assert.Equal(t, 3, stored[0].LikeCount)
	assert.Contains(t, f.summary(t), `edutalk_feed_mutations_total{op="like"} 3`)
	assert.Contains(t, f.summary(t), `edutalk_feed_mutations_total{op="post"} 1`)
}

func TestMutationsBeforeInitializeAreRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	existing := f.store(t, nil)
	_, err := existing.AddPost(ctx, "u1", "Alex", "Hi", "first")
	require.NoError(t, err)
	before := f.raw(t)

	s := New(f.db, Options{NewID: ids.Sequence("late")})
	var published int
	s.Subscribe(func(events.Event) { published++ })

	_, err = s.AddPost(ctx, "u2", "Sam", "Too early", "body")
	require.ErrorIs(t, err, common.ErrNotInitialized)
	require.ErrorIs(t, s.AddReply(ctx, "1", "u2", "Sam", "hello"), common.ErrNotInitialized)
	require.ErrorIs(t, s.LikePost(ctx, "1"), common.ErrNotInitialized)

	assert.Equal(t, before, f.raw(t))
	assert.Zero(t, published)
	assert.Empty(t, s.Posts())

	require.NoError(t, s.Initialize(ctx))
	require.Len(t, s.Posts(), 3)
	require.NoError(t, s.LikePost(ctx, "1"))
}

func TestUnknownPostLeavesFeedUntouched(t *testing.T) {
	f := newFixture(t)
	s := f.store(t, nil)
	ctx := context.Background()

	before := f.raw(t)
	var published int
	s.Subscribe(func(events.Event) { published++ })

	require.NoError(t, s.LikePost(ctx, "missing"))
	require.NoError(t, s.AddReply(ctx, "missing", "u1", "Alex", "hello?"))

	assert.Equal(t, before, f.raw(t))
	assert.Zero(t, published)
	for _, line := range f.summary(t) {
		assert.NotContains(t, line, "feed_mutations_total")
	}
}

func TestAddReply_KeepsAppendOrder(t *testing.T) {
	f := newFixture(t)
	s := f.store(t, nil)
	ctx := context.Background()

	for _, c := range []string{"one", "two", "three"} {
		require.NoError(t, s.AddReply(ctx, "2", "u1", "Alex", c))
	}

	p, err := s.Post("2")
	require.NoError(t, err)
	require.Len(t, p.Replies, 3)
	assert.Equal(t, "one", p.Replies[0].Content)
	assert.Equal(t, "two", p.Replies[1].Content)
	assert.Equal(t, "three", p.Replies[2].Content)
	assert.Equal(t, "id-1", p.Replies[0].ID)
	assert.Equal(t, 3, p.LikeCount)

	stored := f.persisted(t)
	if diff := cmp.Diff(p.Replies, stored[1].Replies); diff != "" {
		t.Fatalf("persisted replies mismatch (-want +got):\n%s", diff)
	}
}

func TestLikeCountNeverDecreases(t *testing.T) {
	s := newFixture(t).store(t, nil)
	ctx := context.Background()

	last := map[string]int{}
	for _, p := range s.Posts() {
		last[p.ID] = p.LikeCount
	}

	ops := []func() error{
		func() error { return s.LikePost(ctx, "1") },
		func() error { return s.AddReply(ctx, "1", "u", "U", "x") },
		func() error { _, err := s.AddPost(ctx, "u", "U", "t", "c"); return err },
		func() error { return s.LikePost(ctx, "nope") },
		func() error { return s.LikePost(ctx, "2") },
	}
	for round := 0; round < 4; round++ {
		for _, op := range ops {
			require.NoError(t, op())
			for _, p := range s.Posts() {
				assert.GreaterOrEqual(t, p.LikeCount, last[p.ID])
				last[p.ID] = p.LikeCount
			}
		}
	}
}

func TestPost_NotFound(t *testing.T) {
	s := newFixture(t).store(t, nil)

	_, err := s.Post("missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestEvents(t *testing.T) {
	s := newFixture(t).store(t, nil)
	ctx := context.Background()

	var got []events.Event
	unsubscribe := s.Subscribe(func(e events.Event) { got = append(got, e) })

	post, err := s.AddPost(ctx, "u1", "Alex", "t", "c")
	require.NoError(t, err)
	require.NoError(t, s.AddReply(ctx, post.ID, "u2", "Sam", "r"))
	require.NoError(t, s.LikePost(ctx, post.ID))
	unsubscribe()
	require.NoError(t, s.LikePost(ctx, post.ID))

	assert.Equal(t, []events.Event{
		{Kind: events.FeedChanged, Op: "post", Target: post.ID},
		{Kind: events.FeedChanged, Op: "reply", Target: post.ID},
		{Kind: events.FeedChanged, Op: "like", Target: post.ID},
	}, got)
}

type failingRepo struct {
	records.Repository
	setErr error
}

func (r *failingRepo) Set(ctx context.Context, key string, value []byte) error {
	if r.setErr != nil {
		return r.setErr
	}
	return r.Repository.Set(ctx, key, value)
}

func TestFailedWriteKeepsPreviousState(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("disk full")
	repo := &failingRepo{}
	s := f.store(t, func(db dbx.DBTX) records.Repository {
		repo.Repository = records.NewSQLiteRepository(db)
		return repo
	})
	ctx := context.Background()
	before := s.Posts()
	beforeRaw := f.raw(t)

	repo.setErr = boom

	require.ErrorIs(t, s.LikePost(ctx, "1"), boom)
	require.ErrorIs(t, s.AddReply(ctx, "1", "u", "U", "x"), boom)
	_, err := s.AddPost(ctx, "u", "U", "t", "c")
	require.ErrorIs(t, err, boom)

	assert.Equal(t, before, s.Posts())
	assert.Equal(t, beforeRaw, f.raw(t))
}

func TestInitialize_ReadFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("database is locked")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM records WHERE key = ?`)).
		WithArgs(records.KeyCommunityFeed).WillReturnError(boom)

	s := New(db, Options{})
	require.ErrorIs(t, s.Initialize(context.Background()), boom)
	assert.Empty(t, s.Posts())
	require.NoError(t, mock.ExpectationsWereMet())
}
