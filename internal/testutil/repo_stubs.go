package testutil

import (
	"context"

	"blogapi/internal/models"
	"blogapi/internal/repository"

	"gorm.io/gorm"
)

// FaultyAuthorRepo wraps a real AuthorRepository and fails writes with the
// configured errors. It simulates a concurrent writer that slips in between a
// service's existence check and its write.
type FaultyAuthorRepo struct {
	repository.AuthorRepository
	CreateErr error
	UpdateErr error
}

// WithTx keeps the injected faults on the transaction-scoped repository.
func (r *FaultyAuthorRepo) WithTx(tx *gorm.DB) repository.AuthorRepository {
	return &FaultyAuthorRepo{
		AuthorRepository: r.AuthorRepository.WithTx(tx),
		CreateErr:        r.CreateErr,
		UpdateErr:        r.UpdateErr,
	}
}

// Create returns CreateErr when set.
func (r *FaultyAuthorRepo) Create(ctx context.Context, author *models.Author) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	return r.AuthorRepository.Create(ctx, author)
}

// Update returns UpdateErr when set.
func (r *FaultyAuthorRepo) Update(ctx context.Context, author *models.Author) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	return r.AuthorRepository.Update(ctx, author)
}

// FaultyPostRepo is FaultyAuthorRepo for posts.
type FaultyPostRepo struct {
	repository.PostRepository
	CreateErr error
	UpdateErr error
}

// WithTx keeps the injected faults on the transaction-scoped repository.
func (r *FaultyPostRepo) WithTx(tx *gorm.DB) repository.PostRepository {
	return &FaultyPostRepo{
		PostRepository: r.PostRepository.WithTx(tx),
		CreateErr:      r.CreateErr,
		UpdateErr:      r.UpdateErr,
	}
}

// Create returns CreateErr when set.
func (r *FaultyPostRepo) Create(ctx context.Context, post *models.Post) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	return r.PostRepository.Create(ctx, post)
}

// Update returns UpdateErr when set.
func (r *FaultyPostRepo) Update(ctx context.Context, post *models.Post) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	return r.PostRepository.Update(ctx, post)
}
