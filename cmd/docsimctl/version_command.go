package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/docsim/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "docsimctl %s\n", version.String())
			return nil
		},
	}
}
