package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/archgov/repository"
)

func watchCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-validate whenever a decision document changes",
		Long: `watch validates once, then watches the docs root and re-runs validation
after each debounced batch of changes. When watch.metrics_addr is set,
Prometheus metrics are served on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags)
			if err != nil {
				return err
			}
			return app.Watch(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

// Watch runs until ctx is canceled.
func (a *App) Watch(ctx context.Context, out io.Writer) error {
	watcher, err := repository.NewWatcher(a.cfg.WatchOptions(), a.cfg.Docs.Root, a.logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	if addr := a.cfg.Watch.MetricsAddr; addr != "" {
		srv := a.serveMetrics(addr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	a.revalidate(ctx, out)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			a.logger.Info("Document changed", "path", ev.Path, "op", ev.Operation)
			a.loader.Invalidate(ev.AbsPath)

			// Drain whatever else the same debounce window produced.
			for drained := false; !drained; {
				select {
				case more, ok := <-watcher.Events():
					if !ok {
						return nil
					}
					a.loader.Invalidate(more.AbsPath)
				default:
					drained = true
				}
			}

			a.metrics.UpdateDroppedEvents(watcher.DroppedEvents())
			a.revalidate(ctx, out)
		}
	}
}

func (a *App) revalidate(ctx context.Context, out io.Writer) {
	report, _, err := a.Validate(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			a.logger.Error("Validation failed", "error", err)
			fmt.Fprintf(out, "validation failed: %v\n", err)
		}
		return
	}
	fmt.Fprintf(out, "[%s] %s", report.GeneratedAt.Format(time.TimeOnly), report.Summary())
}

func (a *App) serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		a.logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Metrics server failed", "error", err)
		}
	}()
	return srv
}
