package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/progress"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a presentation from a topic description",
	Long: `Generates a complete multi-slide HTML presentation from a natural
language topic description and writes it to a self-contained HTML file.
The session is persisted, so the deck can be refined later through the
server or MCP surfaces.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("output", "o", "presentation.html", "output HTML file")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()
	topic := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, database, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	reporter := progress.NewReporter()
	reporter.Start(3)
	reporter.Update(0, "Creating session")

	sess, err := engine.Store().CreateSession(ctx, "", string(cfg.Provider), cfg.Model)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	reporter.Update(1, "Generating slides")
	result, err := engine.Generate(ctx, sess.ID, topic)
	if err != nil {
		return fmt.Errorf("generating presentation: %w", err)
	}

	reporter.Update(2, "Writing output")
	doc, err := engine.Export(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("exporting presentation: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	reporter.Update(3, "Done")
	reporter.Finish()

	fmt.Fprintf(os.Stderr, "Generated %d slides in %s\n", result.SlideCount, time.Since(start).Round(time.Second))
	fmt.Fprintf(os.Stderr, "  Output:  %s\n", output)
	fmt.Fprintf(os.Stderr, "  Session: %s\n", sess.ID)
	return nil
}
