package service

import (
	"context"

	"blogapi/internal/models"
	"blogapi/internal/notifications"
	"blogapi/internal/observability"
	"blogapi/internal/repository"
	"blogapi/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

const (
	msgAuthorNotFound     = "Author not found"
	msgEmailRegistered    = "Email already registered"
	msgCouldNotCreateAuth = "Could not create author"
	msgCouldNotUpdateAuth = "Could not update author"
)

// AuthorService provides author business logic.
type AuthorService struct {
	db         *gorm.DB
	authorRepo repository.AuthorRepository
	postRepo   repository.PostRepository
	notifier   *notifications.Notifier
}

// CreateAuthorInput is the input for creating an author.
type CreateAuthorInput struct {
	Name  string
	Email string
}

// UpdateAuthorInput carries the fields to change; nil fields are left as they are.
type UpdateAuthorInput struct {
	Name  *string
	Email *string
}

// NewAuthorService returns a new AuthorService. notifier may be nil.
func NewAuthorService(
	db *gorm.DB,
	authorRepo repository.AuthorRepository,
	postRepo repository.PostRepository,
	notifier *notifications.Notifier,
) *AuthorService {
	return &AuthorService{
		db:         db,
		authorRepo: authorRepo,
		postRepo:   postRepo,
		notifier:   notifier,
	}
}

// CreateAuthor inserts a new author after checking the email is free.
func (s *AuthorService) CreateAuthor(ctx context.Context, in CreateAuthorInput) (_ *models.Author, err error) {
	ctx, span := observability.StartSpan(ctx, "AuthorService.CreateAuthor")
	defer func() { observability.EndSpan(span, err) }()

	var id uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.authorRepo.WithTx(tx)

		existing, err := repo.GetByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return models.NewConflictError(msgEmailRegistered)
		}

		author := &models.Author{Name: in.Name, Email: in.Email}
		if err := repo.Create(ctx, author); err != nil {
			return err
		}
		id = author.ID
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err, msgCouldNotCreateAuth)
	}

	author, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.PublishBestEffort(ctx, notifications.NewEvent(
		notifications.EntityAuthors, notifications.AuthorCreated, author.ID, validation.NewAuthorRead(author)))
	return author, nil
}

// ListAuthors returns every author ordered by id.
func (s *AuthorService) ListAuthors(ctx context.Context) ([]models.Author, error) {
	authors, err := s.authorRepo.List(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return authors, nil
}

// GetAuthor returns the author with id or a NotFound error.
func (s *AuthorService) GetAuthor(ctx context.Context, id uint) (*models.Author, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if author == nil {
		return nil, models.NewNotFoundError(msgAuthorNotFound)
	}
	return author, nil
}

// UpdateAuthor applies the non-nil fields of in. Changing the email to one
// owned by another author is a Conflict.
func (s *AuthorService) UpdateAuthor(ctx context.Context, id uint, in UpdateAuthorInput) (_ *models.Author, err error) {
	ctx, span := observability.StartSpan(ctx, "AuthorService.UpdateAuthor", attribute.Int64("author.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.authorRepo.WithTx(tx)

		author, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if author == nil {
			return models.NewNotFoundError(msgAuthorNotFound)
		}

		if in.Email != nil && *in.Email != "" && *in.Email != author.Email {
			other, err := repo.GetByEmail(ctx, *in.Email)
			if err != nil {
				return err
			}
			if other != nil {
				return models.NewConflictError(msgEmailRegistered)
			}
		}

		if in.Name != nil {
			author.Name = *in.Name
		}
		if in.Email != nil {
			author.Email = *in.Email
		}
		return repo.Update(ctx, author)
	})
	if err != nil {
		return nil, mapStoreError(err, msgCouldNotUpdateAuth)
	}

	author, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.PublishBestEffort(ctx, notifications.NewEvent(
		notifications.EntityAuthors, notifications.AuthorUpdated, author.ID, validation.NewAuthorRead(author)))
	return author, nil
}

// DeleteAuthor removes the author; the store cascades the delete to its posts.
func (s *AuthorService) DeleteAuthor(ctx context.Context, id uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "AuthorService.DeleteAuthor", attribute.Int64("author.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.authorRepo.WithTx(tx)

		author, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if author == nil {
			return models.NewNotFoundError(msgAuthorNotFound)
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return mapStoreError(err, "Could not delete author")
	}

	s.notifier.PublishBestEffort(ctx, notifications.NewEvent(
		notifications.EntityAuthors, notifications.AuthorDeleted, id, nil))
	return nil
}

// ListAuthorPosts returns the posts of an existing author.
func (s *AuthorService) ListAuthorPosts(ctx context.Context, id uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author, err := s.authorRepo.WithTx(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		if author == nil {
			return models.NewNotFoundError(msgAuthorNotFound)
		}

		posts, err = s.postRepo.WithTx(tx).List(ctx, &id)
		return err
	})
	if err != nil {
		return nil, mapStoreError(err, "Could not list posts")
	}
	return posts, nil
}

func (s *AuthorService) reload(ctx context.Context, id uint) (*models.Author, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if author == nil {
		return nil, models.NewNotFoundError(msgAuthorNotFound)
	}
	return author, nil
}
