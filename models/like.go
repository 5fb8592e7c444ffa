package models

// Like records that a user likes a post. UserID is a plain column with no
// foreign key; the (user_id, post_id) pair is unique.
type Like struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"user_id"`
	PostID uint  `gorm:"not null;uniqueIndex:idx_likes_user_post;index" json:"post_id"`
	Post   *Post `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// All lists every model the schema migration must create, parents first.
func All() []interface{} {
	return []interface{}{&User{}, &Post{}, &Like{}}
}
