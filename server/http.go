package server

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"sync/atomic"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
)

const (
	MCPPath    = "/mcp"
	HealthPath = "/health"
)

// Readiness reports whether the server can take MCP traffic. The zero value
// is not ready.
type Readiness struct {
	ready atomic.Bool
}

func (r *Readiness) SetReady(ready bool) {
	r.ready.Store(ready)
}

func (r *Readiness) Ready() bool {
	return r.ready.Load()
}

// CreateHealthHandler answers 200 {"status":"ok"} when ready and 503
// otherwise.
func CreateHealthHandler(readiness *Readiness) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "ok", http.StatusOK
		if !readiness.Ready() {
			status, code = "unavailable", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}

// CreateHTTPHandler routes the streamable MCP transport and the health
// check.
func CreateHTTPHandler(server *mcp.Server, readiness *Readiness, log logger.Logger) http.Handler {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(MCPPath, mcpHandler)
	mux.Handle(HealthPath, CreateHealthHandler(readiness))
	return CreateRecoveryHandler(mux, log)
}

// CreateRecoveryHandler wraps handler with panic recovery
func CreateRecoveryHandler(handler http.Handler, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("[PANIC RECOVERED] %s %s: %v\n%s", r.Method, r.URL.Path, err, debug.Stack())
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
			}
		}()
		handler.ServeHTTP(w, r)
	})
}
