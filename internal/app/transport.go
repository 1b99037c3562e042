package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/fx"

	"github.com/Epistemic-Technology/scholar-mcp/internal/config"
	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/server"
)

// TransportParams groups dependencies for starting a transport
type TransportParams struct {
	fx.In
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Config     config.Config
	Server     *mcp.Server
	Log        logger.Logger
}

// StartTransport registers the lifecycle hooks of the configured transport.
func StartTransport(p TransportParams) {
	switch p.Config.Transport {
	case config.TransportStdio:
		startStdio(p)
	default:
		startHTTP(p)
	}
}

func startHTTP(p TransportParams) {
	readiness := &server.Readiness{}
	srv := &http.Server{
		Addr:              p.Config.Addr(),
		Handler:           server.CreateHTTPHandler(p.Server, readiness, p.Log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lis, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			readiness.SetReady(true)

			go func() {
				p.Log.Info("MCP server listening on http://%s%s", lis.Addr(), server.MCPPath)
				if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
					readiness.SetReady(false)
					p.Log.Error("HTTP server error: %v", err)
					_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Log.Info("Shutting down HTTP server...")
			readiness.SetReady(false)
			return srv.Shutdown(ctx)
		},
	})
}

// startStdio runs a single session on stdin/stdout. The app stops when the
// host closes the session.
func startStdio(p TransportParams) {
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer close(done)
				p.Log.Info("MCP server running on stdio")
				err := p.Server.Run(runCtx, &mcp.StdioTransport{})
				if err != nil && !errors.Is(err, context.Canceled) {
					p.Log.Error("stdio session failed: %v", err)
					_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
					return
				}
				p.Log.Info("stdio session closed")
				_ = p.Shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
			}
			return nil
		},
	})
}
