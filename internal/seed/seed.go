package seed

import (
	"context"
	"fmt"
	"log/slog"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/notifications"
	"blogapi/internal/repository"
	"blogapi/internal/service"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	Authors        int
	PostsPerAuthor int
	Clean          bool
	// Seed makes the generated data reproducible; zero is random.
	Seed int64
}

// Result counts what a run created.
type Result struct {
	Authors int
	Posts   int
}

// Seeder populates the database with fake data.
type Seeder struct {
	db       *gorm.DB
	notifier *notifications.Notifier
}

// NewSeeder creates a Seeder. notifier may be nil.
func NewSeeder(db *gorm.DB, notifier *notifications.Notifier) *Seeder {
	return &Seeder{db: db, notifier: notifier}
}

// ClearAll removes every post and author.
func (s *Seeder) ClearAll(ctx context.Context) error {
	tx := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := tx.Delete(&models.Post{}).Error; err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	if err := tx.Delete(&models.Author{}).Error; err != nil {
		return fmt.Errorf("clear authors: %w", err)
	}
	return nil
}

// Run creates opts.Authors authors with opts.PostsPerAuthor posts each.
func (s *Seeder) Run(ctx context.Context, opts Options) (Result, error) {
	var res Result
	if opts.Authors < 0 || opts.PostsPerAuthor < 0 {
		return res, fmt.Errorf("seed counts must not be negative")
	}

	if opts.Clean {
		if err := s.ClearAll(ctx); err != nil {
			return res, err
		}
	}

	authorRepo := repository.NewAuthorRepository(s.db)
	postRepo := repository.NewPostRepository(s.db)
	factory := NewFactory(
		service.NewAuthorService(s.db, authorRepo, postRepo, s.notifier),
		service.NewPostService(s.db, postRepo, authorRepo, s.notifier),
		opts.Seed,
	)

	for i := 0; i < opts.Authors; i++ {
		author, err := factory.CreateAuthor(ctx)
		if err != nil {
			return res, fmt.Errorf("create author %d: %w", i+1, err)
		}
		res.Authors++

		for j := 0; j < opts.PostsPerAuthor; j++ {
			if _, err := factory.CreatePost(ctx, author); err != nil {
				return res, fmt.Errorf("create post for author %d: %w", author.ID, err)
			}
			res.Posts++
		}
	}

	middleware.Logger.InfoContext(ctx, "seed complete",
		slog.Int("authors", res.Authors),
		slog.Int("posts", res.Posts),
	)
	return res, nil
}
