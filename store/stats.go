package store

import "context"

// Stats are the site-wide totals.
type Stats struct {
	UserCount int64 `json:"user_count"`
	PostCount int64 `json:"post_count"`
	LikeCount int64 `json:"like_count"`
}

// Stats counts users, posts and likes.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var err error
	if st.UserCount, err = s.CountUsers(ctx); err != nil {
		return Stats{}, err
	}
	if st.PostCount, err = s.CountPosts(ctx); err != nil {
		return Stats{}, err
	}
	if st.LikeCount, err = s.CountLikes(ctx); err != nil {
		return Stats{}, err
	}
	return st, nil
}
