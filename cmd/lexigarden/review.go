package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexigarden/lexigarden/internal/cli"
)

func newReviewCommand() *cobra.Command {
	var limit int

	reviewCommand := &cobra.Command{
		Use:   "review [skill path]",
		Short: "Start an interactive review session",
		Long: "Start an interactive review session over the due chunks. With a skill " +
			"path argument the deck is restricted to that pack and the earned sun " +
			"drops water its tree.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			skillPathID := ""
			if len(args) > 0 {
				skillPathID = args[0]
			}

			st, err := openStores(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = st.close()
			}()

			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			reviews, gardens := buildServices(cfg, st)

			sessionCLI, err := cli.NewReviewSessionCLI(context.Background(), reviews, gardens, catalog, cfg.User, skillPathID, limit)
			if err != nil {
				return err
			}

			fmt.Printf("Starting review session with %d chunks\n", sessionCLI.CardCount())
			if err := sessionCLI.Run(context.Background(), sessionCLI); err != nil {
				return err
			}
			return sessionCLI.Finish(context.Background())
		},
	}
	reviewCommand.Flags().IntVar(&limit, "limit", 0, "Maximum number of chunks in the session (0 means all due)")

	reviewCommand.AddCommand(newReviewDueCommand())

	return reviewCommand
}

func newReviewDueCommand() *cobra.Command {
	var limit int

	command := &cobra.Command{
		Use:   "due",
		Short: "Show the chunks waiting for review",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			st, err := openStores(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = st.close()
			}()

			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			reviews, _ := buildServices(cfg, st)

			queue, err := reviews.DueQueue(context.Background(), cfg.User, limit)
			if err != nil {
				return fmt.Errorf("reviews.DueQueue(%s) > %w", cfg.User, err)
			}
			cli.RenderDueQueue(os.Stdout, queue, catalog.Chunk)
			return nil
		},
	}
	command.Flags().IntVar(&limit, "limit", 0, "Maximum number of chunks to show (0 means all)")

	return command
}
