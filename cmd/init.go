package cmd

import (
	"github.com/spf13/cobra"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize slidegen configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure slidegen and generates a .slidegen.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
