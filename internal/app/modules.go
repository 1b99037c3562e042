// Package app wires the server together with fx.
package app

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Epistemic-Technology/scholar-mcp/internal/config"
	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/Epistemic-Technology/scholar-mcp/server"
)

// ConfigModule provides config.Config from the supplied *viper.Viper
var ConfigModule = fx.Module("config",
	fx.Provide(config.Load),
)

// LoggerModule provides logger.Logger
var LoggerModule = fx.Module("logger",
	fx.Provide(NewLogger),
)

// ClientModule provides the Semantic Scholar client
var ClientModule = fx.Module("client",
	fx.Provide(NewClient),
)

// ServerModule provides the MCP server with all tools registered
var ServerModule = fx.Module("server",
	fx.Provide(NewMCPServer),
)

// TransportModule serves the MCP server over HTTP or stdio
var TransportModule = fx.Module("transport",
	fx.Invoke(StartTransport),
)

// Options assembles the application from a prepared viper instance.
func Options(v *viper.Viper) fx.Option {
	return fx.Options(
		fx.Supply(v),
		ConfigModule,
		LoggerModule,
		ClientModule,
		ServerModule,
		TransportModule,
		fx.WithLogger(func(log logger.Logger) fxevent.Logger {
			if log == nil {
				return fxevent.NopLogger
			}
			return &eventLogger{log: log}
		}),
	)
}

// New creates the application.
func New(v *viper.Viper) *fx.App {
	return fx.New(Options(v))
}

func NewLogger(cfg config.Config) (logger.Logger, error) {
	return logger.NewLogger(cfg.Log)
}

func NewClient(cfg config.Config, log logger.Logger) *s2.Client {
	if cfg.APIKey == "" {
		log.Warn("No Semantic Scholar API key configured; requests share the public rate limit")
	}
	return s2.NewClient(cfg.ClientOptions(), log)
}

func NewMCPServer(client *s2.Client, log logger.Logger) *mcp.Server {
	return server.CreateServer(client, log)
}
