package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the push relay is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().HealthCheck(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s ok\n", opts.server)
			return nil
		},
	}
}
