package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	tldsio "github.com/factsmission/tlds/pkg/io"
	"github.com/factsmission/tlds/pkg/render"
)

func (c *CLI) formatsCommand() *cobra.Command {
	var describe bool

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the output formats",
		Long: `List the media types the renderers produce, with their short names.

With --describe the renderer description is written as a triple document,
the same graph the server renders at /v1/renderers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := render.Default()
			out := cmd.OutOrStdout()
			if describe {
				return tldsio.WriteJSON(registry.Describe("urn:tlds:renderers"), out)
			}
			for _, mt := range registry.Formats() {
				fmt.Fprintf(out, "%-20s %s\n", mt, strings.Join(aliasesFor(mt), ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&describe, "describe", false, "write the renderer description as JSON triples")
	return cmd
}

// aliasesFor returns the sorted short names of mt.
func aliasesFor(mt string) []string {
	var names []string
	for name, target := range formatAliases {
		if target == mt {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
