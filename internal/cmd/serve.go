package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/hub"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/parser"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/server"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/source"
	"github.com/ArtuomMerkulov/WEB-analitic-logs/internal/watcher"
)

var portFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the visit analytics dashboard",
	Long: `Start a web dashboard over the access log: tables and charts of visits
per unit and per employee, with a selectable date range. The log file is
watched for changes, so connected browsers refresh as new lines arrive.

Examples:
  weblogs serve
  weblogs serve --log-file /var/log/portal/cess_log.txt --port 9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&portFlag, "port", "p", "", "listen port (default: 8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down")
		cancel()
		os.Exit(0)
	}()

	src, err := source.Open(logFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	log.WithField("file", src.Path()).Infof("loaded %d line(s)", src.Len())

	w, err := watcher.New([]string{logFile})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	h := hub.New()
	defer h.Close()

	go w.Start(ctx)
	go refreshLoop(ctx, src, w, h)

	port := portFlag
	if port == "" {
		port = viper.GetString("port")
	}

	srv := server.New(src, h, configuredUnits(), port)
	log.Infof("dashboard listening on :%s", port)
	return srv.Start()
}

// refreshLoop reacts to file changes: re-read the log incrementally and
// publish a snapshot so dashboard clients reload. Rotation is handled by
// polling for the file to reappear and re-watching it.
func refreshLoop(ctx context.Context, src *source.Log, w *watcher.Watcher, h *hub.Hub) {
	for {
		select {
		case <-ctx.Done():
			return
		case ch, ok := <-w.Changes:
			if !ok {
				return
			}
			if ch.Removed {
				go reconnect(ctx, src, w, h)
				continue
			}
			publishRefresh(src, h)
		}
	}
}

// reconnect waits for a rotated log file to reappear (up to 5 retries).
func reconnect(ctx context.Context, src *source.Log, w *watcher.Watcher, h *hub.Hub) {
	for i := 0; i < 5; i++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(1 * time.Second):
		}
		if _, err := os.Stat(src.Path()); err == nil {
			log.Infof("reconnected to rotated file: %s", src.Path())
			if err := w.Rewatch(src.Path()); err != nil {
				log.WithError(err).Warn("failed to re-watch rotated file")
			}
			publishRefresh(src, h)
			return
		}
	}
	log.Warnf("gave up reconnecting to %s after 5 retries", src.Path())
}

func publishRefresh(src *source.Log, h *hub.Hub) {
	changed, err := src.Refresh()
	if err != nil {
		log.WithError(err).Warn("log refresh failed")
		return
	}
	if !changed {
		return
	}

	records, failures := parser.ParseAll(src.Lines())
	h.Publish(hub.Snapshot{
		GeneratedAt:   time.Now(),
		TotalLines:    src.Len(),
		TotalRecords:  len(records),
		ParseFailures: len(failures),
	})
}
