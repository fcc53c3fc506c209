package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	transport := string(mcp.TransportStdio)
	addr := "127.0.0.1:8080"
	path := "/mcp"
	cert, key := "", ""

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the journal to MCP clients.",
		Example: `
journal mcp
journal mcp --transport http --addr 127.0.0.1:8080
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			d, err := open()
			if err != nil {
				return err
			}
			defer d.Close()
			r := mcp.Runner{
				Service:          d.service,
				Name:             "journal",
				Version:          version,
				Log:              logger.Named("mcp"),
				Transport:        mcp.Transport(transport),
				In:               cmd.InOrStdin(),
				Out:              cmd.OutOrStdout(),
				HTTPListenAddr:   addr,
				HTTPEndpointPath: path,
				HTTPServerCert:   cert,
				HTTPServerKey:    key,
			}
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", transport, "Transport to serve on. One of stdio, http.")
	cmd.Flags().StringVar(&addr, "addr", addr, "Listen address for the http transport.")
	cmd.Flags().StringVar(&path, "path", path, "Endpoint path for the http transport.")
	cmd.Flags().StringVar(&cert, "tls-cert", cert, "TLS certificate for the http transport.")
	cmd.Flags().StringVar(&key, "tls-key", key, "TLS key for the http transport.")

	topLevel.AddCommand(cmd)
}
