// Package cmd provides the CLI commands for fulltext.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/fulltext"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath    string
	debug         bool
	indexAmount   int
	caseSensitive bool
	onlyPrefix    bool
	docsPath      string
	expandLists   bool
	exclude       []string
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates the root command for the fulltext CLI.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "fulltext",
		Short: "In-memory shingle index over YAML or JSON documents",
		Long: `fulltext loads documents from a YAML or JSON file, indexes every
string, number and boolean they contain and answers substring queries.

Examples:
  fulltext search alice --docs people.yaml
  fulltext search "spring" --docs people.json --index-amount 3
  fulltext stats --docs people.yaml --config fulltext.yaml`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging on stderr")
	pf.IntVar(&opts.indexAmount, "index-amount", 0, "Longest indexed shingle (overrides config)")
	pf.BoolVar(&opts.caseSensitive, "case-sensitive", false, "Match case exactly (overrides config)")
	pf.BoolVar(&opts.onlyPrefix, "prefix", false, "Index word prefixes only (overrides config)")
	pf.StringVar(&opts.docsPath, "docs", "", "YAML or JSON file with the documents to index")
	pf.BoolVar(&opts.expandLists, "list", true, "Treat a top-level list as separate documents")
	pf.StringSliceVar(&opts.exclude, "exclude", nil, "Field names to leave out of the index (repeatable)")

	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newStatsCmd(opts))

	return cmd
}

// newLogger returns a text logger on w, at debug level when requested.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// resolveConfig merges defaults, the config file and explicit flags.
func resolveConfig(cmd *cobra.Command, opts *globalOptions) (fulltext.Config, error) {
	cfg := fulltext.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := fulltext.LoadConfig(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("index-amount") {
		cfg.IndexAmount = opts.indexAmount
	}
	if flags.Changed("case-sensitive") {
		cfg.IgnoreCase = !opts.caseSensitive
	}
	if flags.Changed("prefix") {
		cfg.OnlyPrefix = opts.onlyPrefix
	}
	return cfg, cfg.Validate()
}

// buildIndex creates an index and loads the documents named by --docs.
func buildIndex(cmd *cobra.Command, opts *globalOptions) (*fulltext.Index, error) {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.debug)
	idx, err := fulltext.New(fulltext.WithConfig(cfg), fulltext.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	if opts.docsPath == "" {
		return nil, errors.New("--docs is required")
	}
	f, err := os.Open(opts.docsPath)
	if err != nil {
		return nil, fmt.Errorf("open documents: %w", err)
	}
	defer f.Close()

	docs, err := fulltext.DecodeDocuments(f, opts.expandLists)
	if err != nil {
		return nil, err
	}

	filter := excludeFilter(opts.exclude)
	for i, doc := range docs {
		if doc.IsNull() {
			logger.Warn("skipping null document", slog.Int("position", i))
			continue
		}
		if _, err := idx.Add(doc, filter); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
	}

	logger.Info("documents indexed",
		slog.String("path", opts.docsPath),
		slog.Int("documents", idx.Len()))
	return idx, nil
}

// excludeFilter rejects the named fields at any depth.
func excludeFilter(names []string) fulltext.Filter {
	if len(names) == 0 {
		return nil
	}
	skip := make(map[string]struct{}, len(names))
	for _, n := range names {
		skip[n] = struct{}{}
	}
	return func(key string, _ fulltext.Value) bool {
		_, excluded := skip[key]
		return !excluded
	}
}
