// Package regiondebug exposes best-effort diagnostics for a running region
// root: a small HTTP inspector serving JSON snapshots, and a file-based
// trigger for dumping stats on demand. Everything here reads through the
// root's atomic snapshot surface and never coordinates with the owning
// thread, so attaching it cannot alter functional behavior.
package regiondebug

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/orizon-lang/regionrt/internal/region"
)

// Inspector is a lightweight HTTP server exposing diagnostic endpoints:
//
//	GET /regions -> JSON of region.RootStats
//	GET /healthz -> 200 ok
type Inspector struct {
	srv *http.Server
	ln  net.Listener
}

// StartDebugHTTP starts the inspector on addr (host:port; port 0 picks a
// free port). stats is called per request to snapshot the root.
func StartDebugHTTP(stats func() region.RootStats, addr string) (*Inspector, error) {
	mux := http.NewServeMux()

	mux.HandleFunc("/regions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(stats())
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		_ = srv.Serve(ln)
	}()

	return &Inspector{srv: srv, ln: ln}, nil
}

// Addr returns the bound listen address.
func (in *Inspector) Addr() string {
	return in.ln.Addr().String()
}

// Shutdown stops the inspector, waiting for in-flight requests up to the
// context deadline.
func (in *Inspector) Shutdown(ctx context.Context) error {
	return in.srv.Shutdown(ctx)
}
