package content

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/edutalk/internal/codec"
	"github.com/dmitrijs2005/edutalk/internal/common"
	"github.com/dmitrijs2005/edutalk/internal/events"
	"github.com/dmitrijs2005/edutalk/internal/ids"
	"github.com/dmitrijs2005/edutalk/internal/logging"
	"github.com/dmitrijs2005/edutalk/internal/metrics"
	"github.com/dmitrijs2005/edutalk/internal/models"
	"github.com/dmitrijs2005/edutalk/internal/repositories/records"
)

// Options tunes a Store. Zero values fall back to sensible defaults.
type Options struct {
	Logger  logging.Logger
	Metrics *metrics.Metrics
	NewID   ids.Generator
	Records records.Factory
	// Now stamps new posts and replies.
	Now     func() time.Time
}

// Store owns the feed. Call Initialize before any mutation.
type Store struct {
	db      *sql.DB
	records records.Factory
	log     logging.Logger
	metrics *metrics.Metrics
	newID   ids.Generator
	now     func() time.Time

	mu           sync.Mutex
	ready        bool
	scholarships []models.Scholarship
	courses      []models.Course
	posts        []models.CommunityPost

	bus events.Bus
}

// New returns a Store over db. Mutations fail with common.ErrNotInitialized
// until Initialize has run.
func New(db *sql.DB, opts Options) *Store {
	s := &Store{
		db:      db,
		records: opts.Records,
		log:     opts.Logger,
		metrics: opts.Metrics,
		newID:   opts.NewID,
		now:     opts.Now,
	}
	if s.records == nil {
		s.records = records.SQLite
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	if s.newID == nil {
		s.newID = ids.NewV7
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.log = s.log.With("component", "content")
	return s
}

// Initialize loads the catalogues and the feed. A missing feed is seeded with
// the sample posts and persisted straight away; an unreadable one is logged
// and replaced the same way.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scholarships = seedScholarships()
	s.courses = seedCourses()

	repo := s.records(s.db)
	raw, err := repo.Get(ctx, records.KeyCommunityFeed)
	if err != nil {
		s.log.Error(ctx, "failed to read feed", logging.Err(err))
		return fmt.Errorf("load feed: %w", err)
	}

	if raw != nil {
		posts, err := codec.DecodeFeed(raw)
		if err == nil {
			s.posts = posts
			s.ready = true
			s.log.Info(ctx, "feed loaded", "posts", len(posts))
			return nil
		}
		s.log.Warn(ctx, "persisted feed is unreadable, reseeding", logging.Err(err))
		s.metrics.StorageFallback(records.KeyCommunityFeed)
	}

	posts := seedFeed()
	if err := saveFeed(ctx, repo, posts); err != nil {
		s.log.Error(ctx, "failed to seed feed", logging.Err(err))
		return err
	}
	s.posts = posts
	s.ready = true
	s.log.Info(ctx, "feed seeded", "posts", len(posts))
	return nil
}

// AddPost inserts a new post at the head of the feed.
func (s *Store) AddPost(ctx context.Context, authorID, authorName, title, content string) (models.CommunityPost, error) {
	post := models.CommunityPost{
		ID:         s.newID(),
		AuthorID:   authorID,
		AuthorName: authorName,
		Title:      title,
		Content:    content,
		CreatedAt:  s.now().UTC(),
	}

	err := s.mutate(ctx, "post", post.ID, func(posts []models.CommunityPost) ([]models.CommunityPost, bool) {
		return append([]models.CommunityPost{post}, posts...), true
	})
	if err != nil {
		return models.CommunityPost{}, err
	}
	return post.Clone(), nil
}

// AddReply appends a reply to postID. An unknown post is ignored.
func (s *Store) AddReply(ctx context.Context, postID, authorID, authorName, content string) error {
	reply := models.CommunityReply{
		ID:         s.newID(),
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
		CreatedAt:  s.now().UTC(),
	}

	return s.mutate(ctx, "reply", postID, func(posts []models.CommunityPost) ([]models.CommunityPost, bool) {
		i := indexOf(posts, postID)
		if i < 0 {
			return posts, false
		}
		posts[i].Replies = append(posts[i].Replies, reply)
		return posts, true
	})
}

// LikePost increments the like counter of postID. An unknown post is ignored.
func (s *Store) LikePost(ctx context.Context, postID string) error {
	return s.mutate(ctx, "like", postID, func(posts []models.CommunityPost) ([]models.CommunityPost, bool) {
		i := indexOf(posts, postID)
		if i < 0 {
			return posts, false
		}
		posts[i].LikeCount++
		return posts, true
	})
}

// mutate applies fn to a copy of the feed and persists the result. The
// in-memory feed is replaced only after the write succeeded; fn returning
// false skips the write entirely.
func (s *Store) mutate(ctx context.Context, op, target string, fn func([]models.CommunityPost) ([]models.CommunityPost, bool)) error {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return fmt.Errorf("%s: %w", op, common.ErrNotInitialized)
	}
	next, changed := fn(clonePosts(s.posts))
	if !changed {
		s.mu.Unlock()
		s.log.Debug(ctx, "feed mutation ignored, unknown post", "op", op, "post_id", target)
		return nil
	}

	err := saveFeed(ctx, s.records(s.db), next)
	if err == nil {
		s.posts = next
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error(ctx, "feed mutation failed", "op", op, logging.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.FeedMutation(op)
	s.log.Info(ctx, "feed updated", "op", op, "post_id", target)
	s.bus.Publish(events.Event{Kind: events.FeedChanged, Op: op, Target: target})
	return nil
}

// Scholarships returns the scholarship catalogue.
func (s *Store) Scholarships() []models.Scholarship {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Scholarship, len(s.scholarships))
	for i, sc := range s.scholarships {
		sc.EligibilityCriteria = slices.Clone(sc.EligibilityCriteria)
		out[i] = sc
	}
	return out
}

// Courses returns the course catalogue.
func (s *Store) Courses() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.courses)
}

// Posts returns the feed, newest first.
func (s *Store) Posts() []models.CommunityPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePosts(s.posts)
}

// Post returns a single post or common.ErrNotFound.
func (s *Store) Post(id string) (models.CommunityPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.posts, id)
	if i < 0 {
		return models.CommunityPost{}, fmt.Errorf("post %s: %w", id, common.ErrNotFound)
	}
	return s.posts[i].Clone(), nil
}

// Subscribe registers fn for FeedChanged events.
func (s *Store) Subscribe(fn events.Handler) (unsubscribe func()) {
	return s.bus.Subscribe(fn)
}

func saveFeed(ctx context.Context, repo records.Repository, posts []models.CommunityPost) error {
	raw, err := codec.EncodeFeed(posts)
	if err != nil {
		return err
	}
	if err := repo.Set(ctx, records.KeyCommunityFeed, raw); err != nil {
		return fmt.Errorf("persist feed: %w", err)
	}
	return nil
}

func clonePosts(posts []models.CommunityPost) []models.CommunityPost {
	if posts == nil {
		return nil
	}
	out := make([]models.CommunityPost, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}

func indexOf(posts []models.CommunityPost, id string) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
