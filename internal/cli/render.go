package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/factsmission/tlds/pkg/errors"
	"github.com/factsmission/tlds/pkg/pipeline"
	"github.com/factsmission/tlds/pkg/rdfa"
	"github.com/factsmission/tlds/pkg/render/nodelink"
)

// formatAliases maps short --format names to media types.
var formatAliases = map[string]string{
	"html": rdfa.FormatHTML,
	"dot":  nodelink.FormatDOT,
	"gv":   nodelink.FormatDOT,
	"svg":  nodelink.FormatSVG,
}

// extFormats infers a media type from the output file extension.
var extFormats = map[string]string{
	".html": rdfa.FormatHTML,
	".htm":  rdfa.FormatHTML,
	".dot":  nodelink.FormatDOT,
	".gv":   nodelink.FormatDOT,
	".svg":  nodelink.FormatSVG,
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string        // output file; empty or "-" writes to stdout
	format  string        // alias or media type
	hash    string        // render a cached graph instead of a file
	raw     bool          // disable HTML escaping
	noCache bool          // bypass the cache entirely
	refresh bool          // re-render even if an artifact is cached
	ttl     time.Duration // artifact lifetime
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a JSON or YAML triple document",
		Long: `Render a triple document as an RDFa table (html), Graphviz source (dot) or SVG (svg).

The output format comes from --format, else from the --output extension, else
from the config file. Documents may be .json, .yaml or .yml. A graph rendered
before can be rendered again from the cache with --hash.`,
		Example: `  tlds render people.json > people.html
  tlds render people.yaml -o people.svg
  tlds render --hash 3f2a... -f dot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			if (input == "") == (opts.hash == "") {
				return errors.New(errors.ErrCodeInvalidInput, "provide either a file or --hash")
			}
			if !cmd.Flags().Changed("raw") {
				opts.raw = c.cfg.Render.Raw
			}
			if !cmd.Flags().Changed("ttl") {
				opts.ttl = c.cfg.Cache.TTL
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), input, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: html, dot, svg or a media type")
	cmd.Flags().StringVar(&opts.hash, "hash", "", "render a cached graph by its hash")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "write labels and literals without HTML escaping")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and render again")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", pipeline.DefaultTTL, "lifetime of cached artifacts")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, stdout io.Writer, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	format, err := resolveFormat(opts.format, opts.output, c.cfg.Render.Format)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, pipeline.Options{
		Input:     input,
		GraphHash: opts.hash,
		Format:    format,
		Raw:       opts.raw,
		Refresh:   opts.refresh,
		TTL:       opts.ttl,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	if err := writeArtifact(stdout, opts.output, res.Artifact); err != nil {
		return err
	}
	prog.done("Rendered " + res.Format)

	if opts.output != "" && opts.output != "-" {
		printSuccess("Rendered %s", res.Format)
		printFile(opts.output)
	}
	printStats(res.Stats.TripleCount, res.Stats.SubjectCount, res.CacheHit)
	printDetail("graph %s", res.GraphHash)
	return nil
}

// resolveFormat picks the output media type from the flag, the output path,
// or the configured default, in that order.
func resolveFormat(flag, output, fallback string) (string, error) {
	if flag != "" {
		if mt, ok := formatAliases[strings.ToLower(flag)]; ok {
			return mt, nil
		}
		if strings.Contains(flag, "/") {
			return errors.NormalizeMediaType(flag)
		}
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unknown format %q (use html, dot, svg or a media type)", flag)
	}
	if output != "" && output != "-" {
		if mt, ok := extFormats[strings.ToLower(filepath.Ext(output))]; ok {
			return mt, nil
		}
	}
	if fallback == "" {
		fallback = pipeline.DefaultFormat
	}
	return fallback, nil
}

func writeArtifact(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := stdout.Write(data); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write output")
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
