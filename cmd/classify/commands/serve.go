package commands

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/puneetripathi/bajaj-frontend/components/classify"
	"github.com/puneetripathi/bajaj-frontend/internal/app"
)

// ginMux adapts a gin engine to classify.Mux.
type ginMux struct {
	engine *gin.Engine
}

func (m ginMux) Handle(pattern string, handler http.Handler) {
	m.engine.Any(pattern, gin.WrapH(handler))
}

// serve: host the page and JSON API.
func serveCmd(st *state) *cobra.Command {
	var (
		addr     string
		basePath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the classification page and JSON API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				st.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("base-path") {
				st.cfg.Server.BasePath = basePath
			}
			if st.cfg.Server.Release {
				gin.SetMode(gin.ReleaseMode)
			}

			engine, mounts, err := newEngine(st.wire)
			if err != nil {
				return err
			}

			grace, _ := st.cfg.GraceTimeout()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Printf("classify: page at %s, api at %s, posting to %s", mounts.Page, mounts.API, st.wire.Endpoint.URL)
			return listenAndServe(ctx, st.cfg.Server.Addr, engine, grace)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&basePath, "base-path", "", "path prefix for the page and API")
	return cmd
}

// newEngine mounts the component and a health probe on a fresh gin engine.
func newEngine(w *app.Wire) (*gin.Engine, classify.Mounts, error) {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"endpoint": w.Endpoint.URL,
			"filters":  w.Filters.Strings(),
		})
	})

	mounts, err := w.Component().RegisterRoutes(ginMux{engine: engine}, w.Config.Server.BasePath)
	if err != nil {
		return nil, classify.Mounts{}, err
	}
	return engine, mounts, nil
}

func listenAndServe(ctx context.Context, addr string, handler http.Handler, grace time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("classify: listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("classify: shutting down")
	if grace <= 0 {
		return srv.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
