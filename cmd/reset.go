package cmd

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every document in a collection",
	Long:  `Removes all parent chunks and vector index entries for a collection. This cannot be undone.`,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().String("collection", "", "collection to reset (default: configured collection)")
	resetCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	collection, _ := cmd.Flags().GetString("collection")
	if collection == "" {
		collection = cfg.Collection
	}
	yes, _ := cmd.Flags().GetBool("yes")

	if !yes {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete all documents in %q", collection),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			fmt.Println("Aborted.")
			return nil
		}
	}

	eng, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.Reset(context.Background(), collection); err != nil {
		return fmt.Errorf("resetting %q: %w", collection, err)
	}

	fmt.Printf("Collection %q has been reset.\n", collection)
	return nil
}
