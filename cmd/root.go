package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

func SetVersion(v string) {
	appVersion = v
}

var rootCmd = &cobra.Command{
	Use:           "djgen",
	Short:         "Scaffold Django models from the command line",
	Long:          "djgen generates Django model classes from compact field definitions and appends them to an app's models.py.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.SetVersionTemplate(fmt.Sprintf("djgen v%s\n", appVersion))
}

func Execute() error {
	rootCmd.Version = appVersion
	return rootCmd.Execute()
}
