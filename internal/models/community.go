package models

import "time"

// CommunityPost is a feed entry. Replies keep insertion order and LikeCount
// only ever grows.
type CommunityPost struct {
	ID         string
	AuthorID   string
	AuthorName string
	Title      string
	Content    string
	CreatedAt  time.Time
	Replies    []CommunityReply
	LikeCount  int
}

// CommunityReply belongs to exactly one post.
type CommunityReply struct {
	ID         string
	AuthorID   string
	AuthorName string
	Content    string
	CreatedAt  time.Time
}

// Clone returns a deep copy of p, so callers cannot mutate store state
// through the replies slice.
func (p CommunityPost) Clone() CommunityPost {
	c := p
	if p.Replies != nil {
		c.Replies = make([]CommunityReply, len(p.Replies))
		copy(c.Replies, p.Replies)
	}
	return c
}
