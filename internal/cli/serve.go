package cli

import (
	"context"
	"fmt"
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/factsmission/tlds/internal/server"
	"github.com/factsmission/tlds/pkg/observability"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering service",
		Long: `Serve the renderers over HTTP.

POST a triple document to /v1/render and choose the output with the Accept
header. Responses carry the graph hash in X-Graph-Hash; GET /v1/graphs/{hash}
renders that graph again in any format. Prometheus metrics are served at
/metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the cache")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
	observability.SetRenderHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv := server.New(runner, c.Logger, server.Options{
		MaxBodyBytes:  c.cfg.Server.MaxBodyBytes,
		TTL:           c.cfg.Cache.TTL,
		DefaultFormat: c.cfg.Render.Format,
		Raw:           c.cfg.Render.Raw,
		Metrics:       promhttp.Handler(),
		ReadTimeout:   c.cfg.Server.ReadTimeout,
		WriteTimeout:  c.cfg.Server.WriteTimeout,
	})

	url := "http://" + displayAddr(addr)
	printInfo("Serving on %s", StyleLink.Render(url))
	printNextStep("Try", fmt.Sprintf("curl -H 'Accept: text/vnd.graphviz' --data-binary @graph.json %s/v1/render", url))

	return srv.Run(ctx, addr)
}

// displayAddr turns a listen address into something a browser can open.
func displayAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
