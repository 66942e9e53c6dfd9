package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func collectionsCmd(envFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "Manage collections",
	}

	cmd.AddCommand(collectionsListCmd(envFile))
	cmd.AddCommand(collectionsDeleteCmd(envFile))

	return cmd
}

func collectionsListCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollectionsList(cmd.Context(), *envFile)
		},
	}
}

func collectionsDeleteCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a collection and its embeddings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollectionsDelete(cmd.Context(), *envFile, args[0])
		},
	}
}

func runCollectionsList(ctx context.Context, envFile string) error {
	client, _, err := newClient(envFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			client.Logger().Error("failed to close client", slog.Any("error", err))
		}
	}()

	names := client.Collections.List(ctx)
	if len(names) == 0 {
		fmt.Println("no collections")
		return nil
	}

	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runCollectionsDelete(ctx context.Context, envFile, name string) error {
	client, _, err := newClient(envFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			client.Logger().Error("failed to close client", slog.Any("error", err))
		}
	}()

	if err := client.Collections.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete collection %s: %w", name, err)
	}

	fmt.Printf("collection %s deleted\n", name)
	return nil
}
