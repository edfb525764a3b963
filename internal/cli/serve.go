package cli

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/stacgraph/stacgraph/pkg/errors"
)

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <catalog-dir>",
		Short: "Serve a saved catalog directory over HTTP",
		Long: `Serve exposes a saved catalog tree read-only over HTTP. Documents are
served as application/json, so a served self-contained tree becomes a
browsable RELATIVE_PUBLISHED-style catalog at the listen address.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", args[0])
			}

			logger.Info("serving catalog", "dir", dir, "addr", addr)
			srv := &http.Server{
				Addr:              addr,
				Handler:           catalogRouter(dir, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	return cmd
}

// catalogRouter builds the read-only routes over a catalog directory.
func catalogRouter(dir string, logger *charmlog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	fs := http.FileServer(http.Dir(dir))
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, ".json") {
			w.Header().Set("Content-Type", "application/json")
		}
		fs.ServeHTTP(w, req)
	})

	return r
}

// requestLogger logs each request with method, path, and duration.
func requestLogger(logger *charmlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			started := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)
			logger.Debug("request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(started).Round(time.Microsecond),
			)
		})
	}
}
