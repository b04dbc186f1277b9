// Command seed populates the database with fake authors and posts.
package main

import (
	"fmt"
	"os"

	"blogapi/internal/bootstrap"
	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/notifications"
	"blogapi/internal/seed"

	"github.com/spf13/cobra"
)

func main() {
	var opts seed.Options

	rootCmd := &cobra.Command{
		Use:          "seed",
		Short:        "Seed the database with demo authors and posts",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			db, rdb, err := bootstrap.InitRuntime(cmd.Context(), cfg, bootstrap.Options{ApplySchema: true})
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			var notifier *notifications.Notifier
			if rdb != nil {
				defer func() { _ = rdb.Close() }()
				notifier = notifications.NewNotifier(rdb)
			}

			res, err := seed.NewSeeder(db, notifier).Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Printf("seeded %d authors and %d posts\n", res.Authors, res.Posts)
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.IntVar(&opts.Authors, "authors", 10, "Number of authors to create")
	flags.IntVar(&opts.PostsPerAuthor, "posts-per-author", 5, "Number of posts per author")
	flags.BoolVar(&opts.Clean, "clean", false, "Delete all authors and posts first")
	flags.Int64Var(&opts.Seed, "seed", 0, "Random seed for reproducible data (0 = random)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
