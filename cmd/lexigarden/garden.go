package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexigarden/lexigarden/internal/cli"
	"github.com/lexigarden/lexigarden/internal/daemon"
	"github.com/lexigarden/lexigarden/internal/garden"
)

func newGardenCommand() *cobra.Command {
	gardenCommand := &cobra.Command{
		Use:   "garden",
		Short: "Show the garden and tend its trees",
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

			_, gardens := buildServices(cfg, st)

			trees, err := gardens.Garden(context.Background(), cfg.User)
			if err != nil {
				return fmt.Errorf("gardens.Garden(%s) > %w", cfg.User, err)
			}
			cli.RenderGarden(os.Stdout, trees)
			return nil
		},
	}

	gardenCommand.AddCommand(
		newGardenDecayCommand(),
		newGardenGiftCommand(),
		newGardenReplantCommand(),
	)

	return gardenCommand
}

func newGardenDecayCommand() *cobra.Command {
	var daemonMode bool

	command := &cobra.Command{
		Use:   "decay",
		Short: "Apply the daily health decay to every tree",
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

			_, gardens := buildServices(cfg, st)

			if !daemonMode {
				result, err := gardens.RunDailyDecay(context.Background(), time.Now())
				if err != nil {
					return fmt.Errorf("gardens.RunDailyDecay() > %w", err)
				}
				fmt.Printf("Refreshed %d trees, %d died.\n", result.Refreshed, result.Died)
				return nil
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			d := daemon.New(gardens, cfg.Daemon.DecayAt)
			if err := d.Start(ctx); err != nil {
				return fmt.Errorf("daemon.Start() > %w", err)
			}
			defer d.Stop()

			fmt.Printf("Decaying daily at %s. Press Ctrl+C to stop.\n", cfg.Daemon.DecayAt)
			<-ctx.Done()
			fmt.Println("Received interrupt signal, exiting...")
			return nil
		},
	}
	command.Flags().BoolVar(&daemonMode, "daemon", false, "Keep running and decay every day at the configured time")

	return command
}

func newGardenGiftCommand() *cobra.Command {
	var sunDrops int
	var health int

	command := &cobra.Command{
		Use:   "gift <skill path>",
		Short: "Send a gift from a family member to a tree",
		Long: "Send a gift to a tree. A gift carrying health can revive a dead tree " +
			"while its grace window is still open.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skillPathID := args[0]

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

			_, gardens := buildServices(cfg, st)

			state, err := gardens.SendGift(context.Background(), cfg.User, skillPathID, garden.Reward{
				SunDrops: sunDrops,
				Health:   health,
			})
			if err != nil {
				return fmt.Errorf("gardens.SendGift(%s) > %w", skillPathID, err)
			}

			fmt.Printf("🎁 A gift arrives for %s.\n", skillPathID)
			fmt.Printf("The tree is %s at growth stage %d/%d with %d/%d health.\n",
				state.Status, state.GrowthStage, garden.MaxGrowthStage, state.Health, garden.MaxHealth)
			return nil
		},
	}
	command.Flags().IntVar(&sunDrops, "sun-drops", 0, "Sun drops carried by the gift")
	command.Flags().IntVar(&health, "health", 10, "Health carried by the gift")

	return command
}

func newGardenReplantCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replant <skill path>",
		Short: "Replant a dead tree as a fresh seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skillPathID := args[0]

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

			_, gardens := buildServices(cfg, st)

			state, err := gardens.Replant(context.Background(), cfg.User, skillPathID)
			if err != nil {
				return fmt.Errorf("gardens.Replant(%s) > %w", skillPathID, err)
			}

			fmt.Printf("🌱 Replanted %s as a fresh seed with %d/%d health.\n",
				skillPathID, state.Health, garden.MaxHealth)
			return nil
		},
	}
}
