package store

import (
	"context"
	"time"

	"github.com/chirp/chirp/models"
	"github.com/chirp/chirp/utils"
)

// FeedItem is a post joined with what a page needs to show it.
type FeedItem struct {
	ID             uint      `json:"id"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	AuthorID       uint      `json:"author_id"`
	AuthorNickname string    `json:"author_nickname"`
	LikeCount      int64     `json:"like_count"`
	Liked          bool      `json:"liked"`
}

// Feed returns one page of all posts decorated for viewerID (0 for anonymous).
func (s *Store) Feed(ctx context.Context, viewerID uint, page, pageSize int) ([]FeedItem, Pagination, error) {
	posts, pg, err := s.ListPosts(ctx, page, pageSize)
	if err != nil {
		return nil, Pagination{}, err
	}
	items, err := s.Decorate(ctx, posts, viewerID)
	return items, pg, err
}

// UserFeed returns one page of authorID's posts decorated for viewerID.
func (s *Store) UserFeed(ctx context.Context, authorID, viewerID uint, page, pageSize int) ([]FeedItem, Pagination, error) {
	posts, pg, err := s.PostsByUser(ctx, authorID, page, pageSize)
	if err != nil {
		return nil, Pagination{}, err
	}
	items, err := s.Decorate(ctx, posts, viewerID)
	return items, pg, err
}

// Decorate resolves authors, like counts and the viewer's likes with one query each.
func (s *Store) Decorate(ctx context.Context, posts []models.Post, viewerID uint) ([]FeedItem, error) {
	items := make([]FeedItem, 0, len(posts))
	if len(posts) == 0 {
		return items, nil
	}

	postIDs := make([]uint, 0, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		authorIDs = append(authorIDs, p.UserID)
	}

	authors, err := s.UsersByIDs(ctx, utils.UniqueUint(authorIDs))
	if err != nil {
		return nil, err
	}
	counts, err := s.LikeCounts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	liked, err := s.LikedPostIDs(ctx, viewerID, postIDs)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		items = append(items, FeedItem{
			ID:             p.ID,
			Content:        p.Content,
			Timestamp:      p.Timestamp,
			AuthorID:       p.UserID,
			AuthorNickname: authors[p.UserID].Nickname,
			LikeCount:      counts[p.ID],
			Liked:          liked[p.ID],
		})
	}
	return items, nil
}
