package models

// Post belongs to exactly one Author. Deleting the author removes the post
// through the foreign key's ON DELETE CASCADE rule.
type Post struct {
	ID       uint   `gorm:"primaryKey"`
	Title    string `gorm:"size:255;not null"`
	Content  string `gorm:"type:text;not null"`
	AuthorID uint   `gorm:"not null;index"`
	Author   Author `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// TableName returns the database table name for Post.
func (Post) TableName() string {
	return "posts"
}
