package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/chirp/chirp/models"
)

// CreatePost inserts p. The author must exist; a dangling user id fails the foreign key.
func (s *Store) CreatePost(ctx context.Context, p *models.Post) error {
	if err := s.conn(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// PostByID returns the post with id or ErrNotFound.
func (s *Store) PostByID(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	if err := s.conn(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// ListPosts returns one page of all posts, newest first.
func (s *Store) ListPosts(ctx context.Context, page, pageSize int) ([]models.Post, Pagination, error) {
	return s.pagePosts(s.conn(ctx).Model(&models.Post{}), page, pageSize)
}

// PostsByUser returns one page of the posts written by userID, newest first.
func (s *Store) PostsByUser(ctx context.Context, userID uint, page, pageSize int) ([]models.Post, Pagination, error) {
	return s.pagePosts(s.conn(ctx).Model(&models.Post{}).Where("user_id = ?", userID), page, pageSize)
}

// CountPosts returns the number of published posts.
func (s *Store) CountPosts(ctx context.Context) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Post{}).Count(&n).Error
	return n, err
}

func (s *Store) pagePosts(q *gorm.DB, page, pageSize int) ([]models.Post, Pagination, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("count posts: %w", err)
	}
	pg := NewPagination(page, pageSize, total)

	posts := []models.Post{}
	if int64(pg.Offset()) >= total {
		return posts, pg, nil
	}
	// id breaks ties between posts sharing a timestamp
	err := q.Session(&gorm.Session{}).
		Order("timestamp DESC").Order("id DESC").
		Offset(pg.Offset()).Limit(pg.PageSize).
		Find(&posts).Error
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list posts: %w", err)
	}
	return posts, pg, nil
}
