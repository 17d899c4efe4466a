package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"blogicum/internal/config"
	"blogicum/internal/domain"
	"blogicum/internal/infrastructure/database"
	"blogicum/internal/logger"
	"blogicum/internal/repository"
)

// withPool loads the config and runs fn against a short-lived pool, for
// the one-shot management commands.
func withPool(fn func(ctx context.Context, pool *pgxpool.Pool) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.LogLevel)

	ctx := context.Background()
	pool, err := database.NewPostgres(ctx, poolConfig(cfg))
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, pool)
}

func newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage post categories",
	}

	var (
		title       string
		slug        string
		description string
		hidden      bool
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, pool *pgxpool.Pool) error {
				category := &domain.Category{
					Title:       title,
					Slug:        slug,
					Description: description,
					IsPublished: !hidden,
				}
				if err := repository.NewPostgresCategoryRepository(pool).Create(ctx, category); err != nil {
					return err
				}
				cmd.Printf("created category %d (%s)\n", category.ID, category.Slug)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&title, "title", "", "category title")
	addCmd.Flags().StringVar(&slug, "slug", "", "URL slug")
	addCmd.Flags().StringVar(&description, "description", "", "category description")
	addCmd.Flags().BoolVar(&hidden, "hidden", false, "create unpublished")
	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("slug")

	rmCmd := &cobra.Command{
		Use:   "rm <slug>",
		Short: "Delete a category without posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, pool *pgxpool.Pool) error {
				repo := repository.NewPostgresCategoryRepository(pool)
				category, err := repo.GetBySlug(ctx, args[0])
				if err != nil {
					return err
				}
				if err := repo.Delete(ctx, category.ID); err != nil {
					if errors.Is(err, domain.ErrCategoryInUse) {
						return fmt.Errorf("category %q still has posts", args[0])
					}
					return err
				}
				cmd.Printf("deleted category %s\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(addCmd, rmCmd)
	return cmd
}

func newLocationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Manage post locations",
	}

	var (
		name   string
		hidden bool
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, pool *pgxpool.Pool) error {
				location := &domain.Location{
					Name:        name,
					IsPublished: !hidden,
				}
				if err := repository.NewPostgresLocationRepository(pool).Create(ctx, location); err != nil {
					return err
				}
				cmd.Printf("created location %d (%s)\n", location.ID, location.Name)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "location name")
	addCmd.Flags().BoolVar(&hidden, "hidden", false, "create unpublished")
	_ = addCmd.MarkFlagRequired("name")

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a location; posts keep running without it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid location id %q", args[0])
			}
			return withPool(func(ctx context.Context, pool *pgxpool.Pool) error {
				if err := repository.NewPostgresLocationRepository(pool).Delete(ctx, id); err != nil {
					return err
				}
				cmd.Printf("deleted location %d\n", id)
				return nil
			})
		},
	}

	cmd.AddCommand(addCmd, rmCmd)
	return cmd
}
