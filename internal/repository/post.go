package repository

import (
	"context"

	"blogapi/internal/models"
	"blogapi/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts. Every post it
// returns has its Author loaded.
type PostRepository interface {
	WithTx(tx *gorm.DB) PostRepository
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, authorID *uint) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) WithTx(tx *gorm.DB) PostRepository {
	return &postRepository{db: tx}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()
	return wrapWriteError(r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error)
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("get_by_id", "posts")()

	var post models.Post
	found, err := notFoundAsNil(r.db.WithContext(ctx).Preload("Author").First(&post, id).Error)
	if !found {
		return nil, err
	}
	return &post, nil
}

// List returns posts ordered by id, optionally only those of authorID. An
// unknown author yields an empty slice.
func (r *postRepository) List(ctx context.Context, authorID *uint) ([]models.Post, error) {
	defer observability.TrackQuery("list", "posts")()

	q := r.db.WithContext(ctx).Preload("Author")
	if authorID != nil {
		q = q.Where("author_id = ?", *authorID)
	}

	posts := []models.Post{}
	if err := q.Order("id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("update", "posts")()
	err := r.db.WithContext(ctx).Model(post).Omit(clause.Associations).Select("title", "content").Updates(post).Error
	return wrapWriteError(err)
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "posts")()
	return wrapWriteError(r.db.WithContext(ctx).Delete(&models.Post{}, id).Error)
}
