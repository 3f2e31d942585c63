package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/fulltext"
)

// searchResult is one line of search output.
type searchResult struct {
	Slot     int            `json:"slot"`
	Document fulltext.Value `json:"document"`
}

func newSearchCmd(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Print the documents containing the query",
		Long: `Print every document containing the query text as one JSON line.

Words are joined with single spaces, so quoting is optional.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := buildIndex(cmd, opts)
			if err != nil {
				return err
			}
			return runSearch(cmd, idx, strings.Join(args, " "), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results (0 for all)")
	return cmd
}

func runSearch(cmd *cobra.Command, idx *fulltext.Index, query string, limit int) error {
	ids := idx.SearchIDs(fulltext.String(query))
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, id := range ids {
		doc, _ := idx.Get(id)
		if err := enc.Encode(searchResult{Slot: id, Document: doc}); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	return nil
}
