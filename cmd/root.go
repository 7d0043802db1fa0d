package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "slidegen",
	Short: "AI-powered HTML presentation generation and editing",
	Long: `Slidegen turns natural-language prompts into multi-slide HTML
presentations and refines them through scoped, conversational edits.
Decks keep their structure across edits: charts stay bound to their
slides and an edit to one slide never rewrites the rest of the deck.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".slidegen.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
