package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func searchCmd(envFile *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search all collections by similarity",
		Long: `Search all collections by similarity.

The query is embedded and the most similar stored chunks are returned,
ranked by cosine similarity across every collection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), *envFile, args[0], limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "k", 0, "Number of results (default: configured search limit)")

	return cmd
}

func runSearch(ctx context.Context, envFile, query string, limit int) error {
	client, _, err := newClient(envFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			client.Logger().Error("failed to close client", slog.Any("error", err))
		}
	}()

	if limit <= 0 {
		limit = client.SearchLimit()
	}

	results, err := client.Search.Query(ctx, query, limit)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("no results")
		return nil
	}

	for i, res := range results {
		fmt.Printf("%d. [%.4f]", i+1, res.Score())
		if res.CustomID() != "" {
			fmt.Printf(" (%s)", res.CustomID())
		}
		fmt.Printf("\n%s\n\n", res.Content())
	}

	return nil
}
