// Command scholar-mcp-server serves the Semantic Scholar tools over MCP.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Epistemic-Technology/scholar-mcp/internal/app"
	"github.com/Epistemic-Technology/scholar-mcp/internal/config"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/Epistemic-Technology/scholar-mcp/server"
)

// version is set at build time via ldflags.
var version = "dev"

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"api-key":             config.KeyAPIKey,
	"host":                config.KeyHost,
	"port":                config.KeyPort,
	"transport":           config.KeyTransport,
	"base-url":            config.KeyBaseURL,
	"recommendations-url": config.KeyRecommendationsURL,
	"timeout":             config.KeyTimeout,
	"rate-limit":          config.KeyRateLimit,
	"rate-burst":          config.KeyRateBurst,
	"log-output":          config.KeyLogOutput,
	"log-level":           config.KeyLogLevel,
	"log-file":            config.KeyLogFile,
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scholar-mcp-server",
		Short: "MCP server for the Semantic Scholar academic graph",
		Long: `scholar-mcp-server exposes Semantic Scholar paper search, author lookup,
citation graphs, recommendations and full-text snippet search as MCP tools.

It serves the streamable HTTP transport on /mcp by default, with a readiness
check on /health, or a single session on stdin/stdout with --transport stdio.`,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Flags().GetString("config")
			return config.ReadFile(v, configFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app.New(v).Run()
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "config file (default: ./scholar-mcp.yaml or ~/.config/scholar-mcp/scholar-mcp.yaml)")
	flags.String("api-key", "", "Semantic Scholar API key (or SEMANTIC_SCHOLAR_API_KEY)")
	flags.String("host", "0.0.0.0", "HTTP listen host")
	flags.Int("port", 3000, "HTTP listen port")
	flags.String("transport", config.TransportHTTP, "transport to serve: http or stdio")
	flags.String("base-url", s2.DefaultBaseURL, "Semantic Scholar graph API base URL")
	flags.String("recommendations-url", s2.DefaultRecommendationsURL, "Semantic Scholar recommendations API base URL")
	flags.Duration("timeout", s2.DefaultTimeout, "timeout for each API request")
	flags.Float64("rate-limit", s2.DefaultRequestsPerSecond, "outbound requests per second, 0 to disable pacing")
	flags.Int("rate-burst", s2.DefaultBurst, "outbound request burst")
	flags.String("log-output", "", "log destination: file or stderr (default: auto-detect)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-file", "", "log file path when logging to a file")

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (MCP server %s)\n", server.Name, version, server.Version)
		},
	})
	return cmd
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	v, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd(v).Execute(); err != nil {
		os.Exit(1)
	}
}
