package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/db"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/outline"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/session"
)

var importCmd = &cobra.Command{
	Use:   "import <outline.md>",
	Short: "Import a markdown outline as a presentation",
	Long: `Converts a markdown outline into a seed deck: the top-level heading
becomes the deck title and each second-level heading starts a slide.
The imported deck is persisted as a session, ready for conversational
edits, and written to a self-contained HTML file.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringP("output", "o", "presentation.html", "output HTML file")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading outline: %w", err)
	}

	d, err := outline.FromMarkdown(src)
	if err != nil {
		return fmt.Errorf("importing outline: %w", err)
	}

	// An import never calls the model, so no provider (or API key) is needed.
	database, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	store := session.NewStore(database)

	sess, err := store.CreateSession(ctx, d.Title, string(cfg.Provider), cfg.Model)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	if _, err := store.SaveDeck(ctx, sess.ID, d, "import"); err != nil {
		return fmt.Errorf("saving deck: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if err := os.WriteFile(output, []byte(d.Knit()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Fprintf(os.Stderr, "Imported %d slides from %s\n", len(d.Slides), args[0])
	fmt.Fprintf(os.Stderr, "  Output:  %s\n", output)
	fmt.Fprintf(os.Stderr, "  Session: %s\n", sess.ID)
	return nil
}
