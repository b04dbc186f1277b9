package repository

import (
	"context"

	"blogapi/internal/models"
	"blogapi/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuthorRepository defines persistence operations for authors. Lookups return
// (nil, nil) when no row matches.
type AuthorRepository interface {
	WithTx(tx *gorm.DB) AuthorRepository
	Create(ctx context.Context, author *models.Author) error
	GetByID(ctx context.Context, id uint) (*models.Author, error)
	GetByEmail(ctx context.Context, email string) (*models.Author, error)
	List(ctx context.Context) ([]models.Author, error)
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, id uint) error
}

type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository returns a new AuthorRepository implementation.
func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *authorRepository) WithTx(tx *gorm.DB) AuthorRepository {
	return &authorRepository{db: tx}
}

func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	defer observability.TrackQuery("create", "authors")()
	return wrapWriteError(r.db.WithContext(ctx).Omit(clause.Associations).Create(author).Error)
}

func (r *authorRepository) GetByID(ctx context.Context, id uint) (*models.Author, error) {
	defer observability.TrackQuery("get_by_id", "authors")()

	var author models.Author
	found, err := notFoundAsNil(r.db.WithContext(ctx).First(&author, id).Error)
	if !found {
		return nil, err
	}
	return &author, nil
}

func (r *authorRepository) GetByEmail(ctx context.Context, email string) (*models.Author, error) {
	defer observability.TrackQuery("get_by_email", "authors")()

	var author models.Author
	found, err := notFoundAsNil(r.db.WithContext(ctx).Where("email = ?", email).First(&author).Error)
	if !found {
		return nil, err
	}
	return &author, nil
}

func (r *authorRepository) List(ctx context.Context) ([]models.Author, error) {
	defer observability.TrackQuery("list", "authors")()

	authors := []models.Author{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

func (r *authorRepository) Update(ctx context.Context, author *models.Author) error {
	defer observability.TrackQuery("update", "authors")()
	err := r.db.WithContext(ctx).Model(author).Select("name", "email").Updates(author).Error
	return wrapWriteError(err)
}

func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "authors")()
	return wrapWriteError(r.db.WithContext(ctx).Delete(&models.Author{}, id).Error)
}
