package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/soypat/pixfx"
	"github.com/soypat/pixfx/internal/imageio"
)

const (
	defaultAddr     = ":8080"
	maxBodyBytes    = 32 << 20
	shutdownTimeout = 5 * time.Second
)

// transformInfo is one entry of the GET /transforms listing.
type transformInfo struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// serveCommand starts the HTTP front end.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var workers int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve transforms over HTTP",
		Long: `Serve transforms over HTTP.

  GET  /transforms          list transform names
  POST /transforms/{name}   transform the image in the request body, respond with PNG`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd.Context(), addr, workers)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().IntVarP(&workers, "workers", "w", defaultWorkers(), "parallel row workers per request")
	return cmd
}

func (c *CLI) serve(ctx context.Context, addr string, workers int) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.newRouter(pixfx.Engine{Workers: workers}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// newRouter builds the HTTP routes. Requests only use the CPU engine,
// which is safe for concurrent use.
func (c *CLI) newRouter(engine pixfx.Engine) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(c.requestLogger)

	r.Get("/transforms", c.handleList)
	r.Post("/transforms/{name}", func(w http.ResponseWriter, req *http.Request) {
		c.handleTransform(w, req, engine)
	})
	return r
}

func (c *CLI) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		c.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()),
		)
	})
}

func (c *CLI) handleList(w http.ResponseWriter, _ *http.Request) {
	names := c.catalog.List()
	list := make([]transformInfo, len(names))
	for i, name := range names {
		list[i] = transformInfo{Name: name, Slug: slug(name)}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		c.Logger.Warn("encode transform list", "err", err)
	}
}

func (c *CLI) handleTransform(w http.ResponseWriter, r *http.Request, engine pixfx.Engine) {
	_, fn, err := resolveTransform(c.catalog, chi.URLParam(r, "name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	buf, _, err := imageio.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := engine.Apply(buf, fn); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, pixfx.ErrInvalidDimension) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := imageio.Encode(w, buf, imageio.FormatPNG, 0); err != nil {
		c.Logger.Warn("encode response", "err", err)
	}
}
