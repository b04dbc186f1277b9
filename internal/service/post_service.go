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
	msgPostNotFound       = "Post not found"
	msgAuthorIDMissing    = "author_id does not exist"
	msgCouldNotCreatePost = "Could not create post"
	msgCouldNotUpdatePost = "Could not update post"
)

// PostService provides post business logic.
type PostService struct {
	db         *gorm.DB
	postRepo   repository.PostRepository
	authorRepo repository.AuthorRepository
	notifier   *notifications.Notifier
}

// CreatePostInput is the input for creating a post.
type CreatePostInput struct {
	Title    string
	Content  string
	AuthorID int
}

// UpdatePostInput carries the fields to change; nil fields are left as they are.
type UpdatePostInput struct {
	Title   *string
	Content *string
}

// NewPostService returns a new PostService. notifier may be nil.
func NewPostService(
	db *gorm.DB,
	postRepo repository.PostRepository,
	authorRepo repository.AuthorRepository,
	notifier *notifications.Notifier,
) *PostService {
	return &PostService{
		db:         db,
		postRepo:   postRepo,
		authorRepo: authorRepo,
		notifier:   notifier,
	}
}

// CreatePost inserts a post for an existing author. An unknown author is a
// BadRequest, not a NotFound: the post URL exists, its body is wrong.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (_ *models.Post, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.CreatePost", attribute.Int("post.author_id", in.AuthorID))
	defer func() { observability.EndSpan(span, err) }()

	if in.AuthorID <= 0 {
		return nil, models.NewBadRequestError(msgAuthorIDMissing, nil)
	}
	authorID := uint(in.AuthorID)

	var id uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author, err := s.authorRepo.WithTx(tx).GetByID(ctx, authorID)
		if err != nil {
			return err
		}
		if author == nil {
			return models.NewBadRequestError(msgAuthorIDMissing, nil)
		}

		post := &models.Post{Title: in.Title, Content: in.Content, AuthorID: authorID}
		if err := s.postRepo.WithTx(tx).Create(ctx, post); err != nil {
			return err
		}
		id = post.ID
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err, msgCouldNotCreatePost)
	}

	post, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.PublishBestEffort(ctx, notifications.NewEvent(
		notifications.EntityPosts, notifications.PostCreated, post.ID, validation.NewPostRead(post)))
	return post, nil
}

// ListPosts returns all posts, or only those of authorID when it is set.
// The author is not required to exist.
func (s *PostService) ListPosts(ctx context.Context, authorID *int) ([]models.Post, error) {
	var filter *uint
	if authorID != nil {
		if *authorID <= 0 {
			return []models.Post{}, nil
		}
		id := uint(*authorID)
		filter = &id
	}

	posts, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// GetPost returns the post with id or a NotFound error.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.reload(ctx, id)
}

// UpdatePost applies the non-nil fields of in. The author never changes.
func (s *PostService) UpdatePost(ctx context.Context, id uint, in UpdatePostInput) (_ *models.Post, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.UpdatePost", attribute.Int64("post.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.postRepo.WithTx(tx)

		post, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if post == nil {
			return models.NewNotFoundError(msgPostNotFound)
		}

		if in.Title != nil {
			post.Title = *in.Title
		}
		if in.Content != nil {
			post.Content = *in.Content
		}
		return repo.Update(ctx, post)
	})
	if err != nil {
		return nil, mapStoreError(err, msgCouldNotUpdatePost)
	}

	post, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.PublishBestEffort(ctx, notifications.NewEvent(
		notifications.EntityPosts, notifications.PostUpdated, post.ID, validation.NewPostRead(post)))
	return post, nil
}

// DeletePost removes the post with id.
func (s *PostService) DeletePost(ctx context.Context, id uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.DeletePost", attribute.Int64("post.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.postRepo.WithTx(tx)

		post, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if post == nil {
			return models.NewNotFoundError(msgPostNotFound)
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return mapStoreError(err, "Could not delete post")
	}

	s.notifier.PublishBestEffort(ctx, notifications.NewEvent(
		notifications.EntityPosts, notifications.PostDeleted, id, nil))
	return nil
}

func (s *PostService) reload(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError(msgPostNotFound)
	}
	return post, nil
}
