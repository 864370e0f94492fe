package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDeliveriesCmd(opts *rootOptions) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "deliveries",
		Short: "List recent delivery attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			deliveries, err := opts.client().Deliveries(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(deliveries)
			}

			if len(deliveries) == 0 {
				fmt.Fprintln(out, "no deliveries recorded")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CREATED\tSTATUS\tPROVIDER\tTOKEN\tLATENCY\tTITLE")
			for _, d := range deliveries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dms\t%s\n",
					d.CreatedAt, d.Status, d.Provider, d.TokenHash, d.LatencyMs, d.Title)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "number of records (1-100, server default 20)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}
