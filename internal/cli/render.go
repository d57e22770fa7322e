package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netsketch/pkg/ascii"
	nserrors "github.com/matzehuels/netsketch/pkg/errors"
	"github.com/matzehuels/netsketch/pkg/graph"
	"github.com/matzehuels/netsketch/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path (derived from input if empty)
	format   string // output format: "svg", "png", or "dot"
	detailed bool   // include grid positions and lengths in the output
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "png": true, "dot": true}

// validateFormat checks that format names a supported output format.
func validateFormat(format string) error {
	if !validFormats[format] {
		return nserrors.New(nserrors.ErrCodeInvalidFormat, "invalid format %q (must be svg, png, or dot)", format)
	}
	return nil
}

// newRenderCmd creates the render command for generating visualizations.
// The input may be an ASCII diagram or a graph JSON file produced by parse;
// JSON files are recognized by their .json extension.
func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a diagram or graph file to SVG, PNG, or DOT",
		Long: `Render a diagram or graph file to SVG, PNG, or DOT.

The input is an ASCII diagram, or a graph JSON file written by
"netsketch parse -o". The default output format comes from the config
file (svg if unset).

Examples:
  netsketch render network.txt                 # network.svg
  netsketch render network.txt -f png          # network.png
  netsketch render net.json -o diagram.svg     # from parsed JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				opts.format = cfg.Render.Format
			}
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (derived from input if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include grid positions and drawn lengths")

	return cmd
}

// runRender loads the graph from input, generates the requested format, and
// writes the result.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	g, err := loadGraph(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	dot := render.ToDOT(g, render.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg", "png":
		spin := newSpinner(ctx, fmt.Sprintf("Rendering %s", opts.format))
		spin.Start()
		data, err = renderImage(ctx, dot, opts.format)
		if err != nil {
			spin.StopWithError("Rendering %s failed", opts.format)
			return fmt.Errorf("render %s: %w", opts.format, err)
		}
		spin.Stop()
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	printSuccess("Rendered %s", displayName(input))
	printFile(path)
	return nil
}

// renderImage rasterizes DOT text in the requested image format.
func renderImage(ctx context.Context, dot, format string) ([]byte, error) {
	if format == "png" {
		return render.RenderPNG(ctx, dot)
	}
	return render.RenderSVG(ctx, dot)
}

// loadGraph reads input as graph JSON when it has a .json extension, and
// parses it as an ASCII diagram otherwise.
func loadGraph(input string) (*graph.Graph, error) {
	if strings.EqualFold(filepath.Ext(input), ".json") {
		return graph.ReadGraphFile(input)
	}
	text, err := readDiagram(input)
	if err != nil {
		return nil, err
	}
	g, err := ascii.Parse(text)
	if err != nil {
		return nil, reportParseError(err)
	}
	return g, nil
}
