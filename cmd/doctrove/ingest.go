package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/doctrove/doctrove/domain/corpus"
	"github.com/doctrove/doctrove/infrastructure/chunking"
	"github.com/spf13/cobra"
)

func ingestCmd(envFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <collection> <file>...",
		Short: "Create or replace a collection from text files",
		Long: `Create or replace a collection from text files.

Each file is split into chunks and embedded. The collection's previous
contents, if any, are replaced entirely.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), *envFile, args[0], args[1:])
		},
	}

	return cmd
}

func runIngest(ctx context.Context, envFile, collection string, paths []string) error {
	client, _, err := newClient(envFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			client.Logger().Error("failed to close client", slog.Any("error", err))
		}
	}()

	var chunks []corpus.Chunk
	for _, path := range paths {
		content, err := chunking.LoadTextFile(path)
		if err != nil {
			return err
		}

		pieces, err := client.SplitText(content)
		if err != nil {
			return fmt.Errorf("split %s: %w", path, err)
		}

		for i, piece := range pieces {
			chunks = append(chunks, corpus.NewChunkWithID(piece, fmt.Sprintf("%s:%d", path, i)))
		}
	}

	if err := client.Collections.Update(ctx, collection, chunks); err != nil {
		return fmt.Errorf("update collection %s: %w", collection, err)
	}

	fmt.Printf("collection %s updated with %d chunks from %d files\n", collection, len(chunks), len(paths))
	return nil
}
