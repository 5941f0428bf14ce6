package codec

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/edutalk/internal/models"
	"github.com/dmitrijs2005/edutalk/internal/repositories/records"
)

type replyV1 struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type postV1 struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	Replies    []replyV1 `json:"replies"`
	LikeCount  int       `json:"likeCount"`
}

type legacyReply struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type legacyPost struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	UserName  string        `json:"userName"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Timestamp time.Time     `json:"timestamp"`
	Replies   []legacyReply `json:"replies"`
	Likes     int           `json:"likes"`
}

func (p legacyPost) upgrade() postV1 {
	out := postV1{
		ID:         p.ID,
		AuthorID:   p.UserID,
		AuthorName: p.UserName,
		Title:      p.Title,
		Content:    p.Content,
		CreatedAt:  p.Timestamp,
		LikeCount:  p.Likes,
	}
	for _, r := range p.Replies {
		out.Replies = append(out.Replies, replyV1{
			ID:         r.ID,
			AuthorID:   r.UserID,
			AuthorName: r.UserName,
			Content:    r.Content,
			CreatedAt:  r.Timestamp,
		})
	}
	return out
}

// EncodeFeed serializes the community feed in display order.
func EncodeFeed(posts []models.CommunityPost) ([]byte, error) {
	out := make([]postV1, len(posts))
	for i, p := range posts {
		replies := make([]replyV1, len(p.Replies))
		for j, r := range p.Replies {
			replies[j] = replyV1{
				ID:         r.ID,
				AuthorID:   r.AuthorID,
				AuthorName: r.AuthorName,
				Content:    r.Content,
				CreatedAt:  r.CreatedAt.UTC(),
			}
		}
		out[i] = postV1{
			ID:         p.ID,
			AuthorID:   p.AuthorID,
			AuthorName: p.AuthorName,
			Title:      p.Title,
			Content:    p.Content,
			CreatedAt:  p.CreatedAt.UTC(),
			Replies:    replies,
			LikeCount:  p.LikeCount,
		}
	}
	return seal(records.KeyCommunityFeed, out)
}

// DecodeFeed parses a community-feed record. Posts without replies decode
// with a nil Replies slice.
func DecodeFeed(raw []byte) ([]models.CommunityPost, error) {
	var cur []postV1
	var old []legacyPost
	isLegacy, err := decode(records.KeyCommunityFeed, raw, &cur, &old)
	if err != nil {
		return nil, err
	}
	if isLegacy {
		cur = make([]postV1, len(old))
		for i, p := range old {
			cur[i] = p.upgrade()
		}
	}

	posts := make([]models.CommunityPost, 0, len(cur))
	for _, p := range cur {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: post without id", ErrMalformed)
		}
		if p.LikeCount < 0 {
			return nil, fmt.Errorf("%w: post %s has negative like count", ErrMalformed, p.ID)
		}
		post := models.CommunityPost{
			ID:         p.ID,
			AuthorID:   p.AuthorID,
			AuthorName: p.AuthorName,
			Title:      p.Title,
			Content:    p.Content,
			CreatedAt:  p.CreatedAt.UTC(),
			LikeCount:  p.LikeCount,
		}
		for _, r := range p.Replies {
			post.Replies = append(post.Replies, models.CommunityReply{
				ID:         r.ID,
				AuthorID:   r.AuthorID,
				AuthorName: r.AuthorName,
				Content:    r.Content,
				CreatedAt:  r.CreatedAt.UTC(),
			})
		}
		posts = append(posts, post)
	}
	return posts, nil
}
