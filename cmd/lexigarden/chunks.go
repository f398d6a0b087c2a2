package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexigarden/lexigarden/internal/chunk"
)

func newChunksCommand() *cobra.Command {
	chunksCommand := &cobra.Command{
		Use:   "chunks",
		Short: "Chunk pack commands",
	}

	chunksCommand.AddCommand(
		newChunksValidateCommand(),
		newChunksListCommand(),
	)

	return chunksCommand
}

func newChunksValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the chunk packs for consistency and correctness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			result := catalog.Validate()
			displayValidationResults(result)

			// Exit with error code if there are validation errors
			if result.HasErrors() {
				return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
			}

			return nil
		},
	}
}

func newChunksListCommand() *cobra.Command {
	var packID string

	command := &cobra.Command{
		Use:   "list",
		Short: "List the loaded chunks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			var chunks []chunk.Chunk
			if packID != "" {
				chunks, err = catalog.PackChunks(packID)
				if err != nil {
					return fmt.Errorf("catalog.PackChunks(%s) > %w", packID, err)
				}
			} else {
				chunks = catalog.Chunks()
			}

			for _, entry := range chunks {
				fmt.Printf("%-24s %-12s %-24s %s\n", entry.ID, entry.Type, entry.Text, entry.Translation)
			}
			fmt.Println()
			if packID != "" {
				fmt.Printf("%d chunks in pack %s\n", len(chunks), packID)
			} else {
				fmt.Printf("%d chunks in %d packs\n", len(chunks), len(catalog.Packs()))
			}
			return nil
		},
	}
	command.Flags().StringVar(&packID, "pack", "", "Only list chunks of this pack")

	return command
}

func displayValidationResults(result *chunk.ValidationResult) {
	totalErrors := len(result.Errors)
	totalWarnings := len(result.Warnings)

	fmt.Println("\n=== Validation Results ===")

	// Display errors
	if len(result.Errors) > 0 {
		fmt.Printf("✗ Pack Validation Errors (%d):\n", len(result.Errors))

		// Group errors by type
		packIndexErrors := []chunk.ValidationError{}
		duplicateErrors := []chunk.ValidationError{}
		chunkErrors := []chunk.ValidationError{}

		for _, err := range result.Errors {
			if strings.Contains(err.Message, "pack has no") {
				packIndexErrors = append(packIndexErrors, err)
			} else if strings.Contains(err.Message, "already used by pack") {
				duplicateErrors = append(duplicateErrors, err)
			} else {
				chunkErrors = append(chunkErrors, err)
			}
		}

		if len(packIndexErrors) > 0 {
			fmt.Printf("\n  Pack index errors (%d):\n", len(packIndexErrors))
			for _, err := range packIndexErrors {
				fmt.Printf("    - %s\n", err.Error())
			}
		}

		if len(duplicateErrors) > 0 {
			fmt.Printf("\n  Duplicate chunk ids (%d):\n", len(duplicateErrors))
			for _, err := range duplicateErrors {
				fmt.Printf("    - %s\n", err.Error())
			}
		}

		if len(chunkErrors) > 0 {
			fmt.Printf("\n  Chunk errors (%d):\n", len(chunkErrors))
			// Show only first 10 to avoid cluttering output
			displayCount := len(chunkErrors)
			if displayCount > 10 {
				displayCount = 10
			}
			for i := 0; i < displayCount; i++ {
				fmt.Printf("    - %s\n", chunkErrors[i].Error())
			}
			if len(chunkErrors) > 10 {
				fmt.Printf("    ... and %d more\n", len(chunkErrors)-10)
			}
		}

		fmt.Println()
	}

	// Display warnings
	if len(result.Warnings) > 0 {
		fmt.Printf("⚠ Warnings (%d):\n", len(result.Warnings))

		// Group warnings
		ignoredSlotWarnings := []chunk.ValidationError{}
		emptyPackWarnings := []chunk.ValidationError{}
		otherWarnings := []chunk.ValidationError{}

		for _, warn := range result.Warnings {
			if strings.Contains(warn.Message, "slots are ignored") {
				ignoredSlotWarnings = append(ignoredSlotWarnings, warn)
			} else if strings.Contains(warn.Message, "lists no chunk files") {
				emptyPackWarnings = append(emptyPackWarnings, warn)
			} else {
				otherWarnings = append(otherWarnings, warn)
			}
		}

		if len(ignoredSlotWarnings) > 0 {
			fmt.Printf("\n  Ignored slots (%d):\n", len(ignoredSlotWarnings))
			for _, warn := range ignoredSlotWarnings {
				fmt.Printf("    - %s\n", warn.Error())
			}
		}

		if len(emptyPackWarnings) > 0 {
			fmt.Printf("\n  Packs without chunk files (%d):\n", len(emptyPackWarnings))
			for _, warn := range emptyPackWarnings {
				fmt.Printf("    - %s\n", warn.Error())
			}
		}

		if len(otherWarnings) > 0 {
			fmt.Printf("\n  Other warnings (%d):\n", len(otherWarnings))
			for _, warn := range otherWarnings {
				fmt.Printf("    - %s\n", warn.Error())
			}
		}

		fmt.Println()
	}

	// Display summary
	fmt.Println("=== Summary ===")
	if totalErrors == 0 && totalWarnings == 0 {
		fmt.Println("✓ All validations passed!")
	} else {
		if totalErrors > 0 {
			fmt.Printf("✗ Total errors: %d\n", totalErrors)
		}
		if totalWarnings > 0 {
			fmt.Printf("⚠ Total warnings: %d\n", totalWarnings)
		}
	}
	fmt.Println()
}
