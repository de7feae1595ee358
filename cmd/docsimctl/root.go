package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/docsim/internal/config"
)

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:           "docsimctl",
		Short:         "Compare documents and browse comparison history",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.env, "env", config.GetEnv(), "Environment whose config/<env>.yaml is loaded")
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path (overrides --env)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newCompareCommand(ctx))
	rootCmd.AddCommand(newResultsCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
