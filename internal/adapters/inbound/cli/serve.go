package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/designlint/designlint/internal/adapters/inbound/ws"
	"github.com/designlint/designlint/internal/adapters/outbound/document"
	"github.com/designlint/designlint/internal/adapters/outbound/storage"
	"github.com/designlint/designlint/internal/logger"
)

const (
	defaultAddr     = ":8787"
	shutdownTimeout = 5 * time.Second
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <document>",
		Short: "Serve a document to a presentation layer over websocket",
		Long: "Serve the lint command protocol on /ws for the given document. " +
			"The address comes from --addr, then DESIGNLINT_ADDR, then " + defaultAddr + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log := logger.For(logger.ComponentTransport)

			doc, err := document.Load(args[0], document.WithLogger(logger.For(logger.ComponentDocument)))
			if err != nil {
				return err
			}

			listen := resolveAddr(addr)
			h := ws.NewHandler(doc, storage.New(cfg.StorageDir), cfg)
			srv := &http.Server{
				Addr:              listen,
				Handler:           h.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Infow("Listening", "addr", listen, "document", doc.Name(), "nodes", doc.Len())
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serving: %w", err)
			case <-ctx.Done():
				log.Infow("Shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address")

	return cmd
}

func resolveAddr(flag string) string {
	addr := strings.TrimSpace(flag)
	if addr == "" {
		addr = strings.TrimSpace(os.Getenv("DESIGNLINT_ADDR"))
	}
	if addr == "" {
		return defaultAddr
	}
	if !strings.Contains(addr, ":") {
		return ":" + addr
	}
	return addr
}
