package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexigarden/lexigarden/internal/garden"
)

func newLessonCommand() *cobra.Command {
	lessonCommand := &cobra.Command{
		Use:   "lesson",
		Short: "Lesson completion commands",
	}

	lessonCommand.AddCommand(newLessonCompleteCommand())

	return lessonCommand
}

func newLessonCompleteCommand() *cobra.Command {
	var chunkIDs []string
	var sunDrops int
	var health int

	command := &cobra.Command{
		Use:   "complete <skill path> <lesson id>",
		Short: "Record a completed lesson and water its tree",
		Long: "Record a completed lesson: the chunks it introduced enter the review " +
			"queue and the earned sun drops water the skill path's tree.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			skillPathID := args[0]
			lessonID := args[1]

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
			for _, chunkID := range chunkIDs {
				if _, ok := catalog.Chunk(chunkID); !ok {
					return fmt.Errorf("unknown chunk %q", chunkID)
				}
			}

			reviews, gardens := buildServices(cfg, st)

			ctx := context.Background()
			introduced, err := reviews.IntroduceChunks(ctx, cfg.User, lessonID, chunkIDs)
			if err != nil {
				return fmt.Errorf("reviews.IntroduceChunks(%s) > %w", lessonID, err)
			}

			state, err := gardens.CompleteLesson(ctx, cfg.User, skillPathID, garden.Reward{
				SunDrops: sunDrops,
				Health:   health,
			})
			if err != nil {
				return fmt.Errorf("gardens.CompleteLesson(%s) > %w", skillPathID, err)
			}

			if introduced > 0 {
				fmt.Printf("Introduced %d new chunks into the review queue.\n", introduced)
			}
			fmt.Printf("☀️  %d sun drops fall on %s.\n", sunDrops, skillPathID)
			fmt.Printf("The tree is %s at growth stage %d/%d with %d/%d health.\n",
				state.Status, state.GrowthStage, garden.MaxGrowthStage, state.Health, garden.MaxHealth)
			return nil
		},
	}
	command.Flags().StringSliceVar(&chunkIDs, "chunks", nil, "Chunk IDs the lesson introduced for the first time")
	command.Flags().IntVar(&sunDrops, "sun-drops", 10, "Sun drops awarded by the lesson")
	command.Flags().IntVar(&health, "health", 5, "Health restored by the lesson")

	return command
}
