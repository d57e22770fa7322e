package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netsketch/pkg/ascii"
	"github.com/matzehuels/netsketch/pkg/cache"
	nserrors "github.com/matzehuels/netsketch/pkg/errors"
	"github.com/matzehuels/netsketch/pkg/graph"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	output      string // output file path for graph JSON (stdout summary if empty)
	json        bool   // print graph JSON to stdout instead of the summary
	redraw      bool   // print the patched diagram instead of parsing to JSON
	interactive bool   // open the interactive graph browser after parsing
	refresh     bool   // bypass the parse cache
}

// newParseCmd creates the parse command.
// It reads a diagram from a file (or stdin when the argument is "-"), parses
// it into a graph, and prints a styled summary or writes graph JSON.
func newParseCmd() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse an ASCII diagram into a graph",
		Long: `Parse an ASCII diagram into a graph.

The diagram is read from the given file, or from stdin when the argument
is "-". Nodes are words drawn in the diagram; edges are traced along the
line characters - | / \ connecting them.

Examples:
  netsketch parse network.txt              # styled summary
  netsketch parse network.txt --json       # graph JSON on stdout
  netsketch parse network.txt -o net.json  # graph JSON to file
  cat network.txt | netsketch parse -      # read from stdin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write graph JSON to file")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print graph JSON to stdout")
	cmd.Flags().BoolVar(&opts.redraw, "redraw", false, "print the normalized diagram and exit")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the parsed graph interactively")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the parse cache")

	return cmd
}

// runParse reads the diagram, parses it (consulting the cache first), and
// emits the result in the requested form.
func runParse(ctx context.Context, input string, opts *parseOpts) error {
	logger := loggerFromContext(ctx)

	text, err := readDiagram(input)
	if err != nil {
		return err
	}

	if opts.redraw {
		fmt.Print(ascii.Redraw(text))
		return nil
	}

	prog := newProgress(logger)
	g, cached, err := parseCached(ctx, text, opts.refresh)
	if err != nil {
		return reportParseError(err)
	}
	prog.done(fmt.Sprintf("Parsed %d nodes, %d edges", g.NodeCount(), g.EdgeCount()))

	if opts.interactive {
		return browseGraph(g)
	}
	if opts.json || opts.output != "" {
		return writeGraphJSON(g, opts.output)
	}

	printSuccess("Parsed %s", displayName(input))
	printStats(g.NodeCount(), g.EdgeCount(), cached)
	for _, e := range graph.FromGraph(g).Edges {
		if e.Label != "" {
			printDetail("%s %s %s (%s, length %d)", e.A, iconArrow, e.B, e.Label, e.Length)
		} else {
			printDetail("%s %s %s (length %d)", e.A, iconArrow, e.B, e.Length)
		}
	}
	printNextStep("Render it", fmt.Sprintf("netsketch render %s", input))
	return nil
}

// parseCached parses text, reusing a cached result when available. The cache
// backend comes from the user config; cache failures degrade to a fresh parse.
func parseCached(ctx context.Context, text string, refresh bool) (*graph.Graph, bool, error) {
	logger := loggerFromContext(ctx)

	c := cache.NewScoped(cacheFromConfig(ctx), "parse")
	defer c.Close()

	key := cache.Hash([]byte(text))
	if !refresh {
		if data, hit, err := c.Get(ctx, key); err == nil && hit {
			g, err := graph.UnmarshalGraph(data)
			if err == nil {
				return g, true, nil
			}
			logger.Debugf("Discarding unreadable cache entry: %v", err)
		}
	}

	g, err := ascii.Parse(text)
	if err != nil {
		return nil, false, err
	}
	if data, err := graph.MarshalGraph(g); err == nil {
		if err := c.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			logger.Debugf("Cache write failed: %v", err)
		}
	}
	return g, false, nil
}

// cacheFromConfig opens the configured cache backend, degrading to a no-op
// cache when the config is unreadable or the backend is unreachable.
func cacheFromConfig(ctx context.Context) cache.Cache {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		printWarning("Config unreadable, caching disabled")
		logger.Debugf("loadConfig: %v", err)
		return cache.NewNullCache()
	}
	c, err := openCache(ctx, cfg.Cache)
	if err != nil {
		printWarning("Cache unavailable, caching disabled")
		logger.Debugf("openCache: %v", err)
		return cache.NewNullCache()
	}
	return c
}

// reportParseError prints a styled parse failure, including the rendered
// snippet of the broken geometry, and returns a terse error for cobra.
func reportParseError(err error) error {
	var edgeErr *ascii.EdgeError
	if errors.As(err, &edgeErr) {
		printError("Diagram has broken geometry at %v", edgeErr.Pos)
		printSnippet(edgeErr.Snippet)
		switch {
		case errors.Is(err, ascii.ErrTooFewNodes):
			printDetail("An edge must connect exactly two nodes; this one dangles.")
		case errors.Is(err, ascii.ErrTooManyNodes):
			printDetail("An edge must connect exactly two nodes; this one branches.")
		}
		return fmt.Errorf("parse failed")
	}
	return err
}

// readDiagram reads the diagram from path, or from stdin when path is "-".
func readDiagram(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nserrors.Wrap(nserrors.ErrCodeFileNotFound, err, "no such file %q", path)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// displayName returns a human-friendly name for the input argument.
func displayName(input string) string {
	if input == "-" {
		return "stdin"
	}
	return input
}

// writeGraphJSON serializes g as JSON to path, or stdout when path is empty.
func writeGraphJSON(g *graph.Graph, path string) error {
	if path == "" {
		return graph.WriteGraph(g, os.Stdout)
	}
	if err := graph.WriteGraphFile(g, path); err != nil {
		return err
	}
	printFile(path)
	return nil
}
