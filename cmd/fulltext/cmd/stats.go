package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print document and shingle counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			idx, err := buildIndex(cmd, opts)
			if err != nil {
				return err
			}

			cfg := idx.Config()
			stats := idx.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "documents:    %d\n", stats.Documents)
			fmt.Fprintf(out, "index_amount: %d\n", cfg.IndexAmount)
			fmt.Fprintf(out, "ignore_case:  %t\n", cfg.IgnoreCase)
			fmt.Fprintf(out, "only_prefix:  %t\n", cfg.OnlyPrefix)
			for i, n := range stats.Terms {
				fmt.Fprintf(out, "level %2d:     %d shingles\n", i+1, n)
			}
			return nil
		},
	}
}
