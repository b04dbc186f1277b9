// Package models contains the persisted entities and the application error taxonomy.
package models

// Author is a post writer. Email is unique across all authors.
type Author struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:255;not null"`
	Email string `gorm:"size:255;not null;uniqueIndex"`
}

// TableName returns the database table name for Author.
func (Author) TableName() string {
	return "authors"
}
