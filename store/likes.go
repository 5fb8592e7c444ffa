package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chirp/chirp/models"
)

// ToggleLike flips whether userID likes postID and reports the new state.
// The unique (user_id, post_id) index keeps concurrent toggles from ever
// producing a duplicate row. ErrNotFound means the post does not exist.
func (s *Store) ToggleLike(ctx context.Context, userID, postID uint) (liked bool, err error) {
	err = s.WithTransaction(ctx, func(tx *Store) error {
		if _, err := tx.PostByID(ctx, postID); err != nil {
			return err
		}

		res := tx.conn(ctx).Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return fmt.Errorf("remove like: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		like := models.Like{UserID: userID, PostID: postID}
		err := tx.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("add like: %w", err)
		}
		liked = true
		return nil
	})
	return liked, err
}

// LikeCounts returns the number of likes per post for postIDs. Posts without likes are absent.
func (s *Store) LikeCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		PostID uint
		N      int64
	}
	err := s.conn(ctx).Model(&models.Like{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.PostID] = r.N
	}
	return out, nil
}

// LikedPostIDs returns which of postIDs userID currently likes.
func (s *Store) LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(postIDs))
	if userID == 0 || len(postIDs) == 0 {
		return out, nil
	}
	var ids []uint
	err := s.conn(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// CountLikes returns the total number of likes.
func (s *Store) CountLikes(ctx context.Context) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Like{}).Count(&n).Error
	return n, err
}
