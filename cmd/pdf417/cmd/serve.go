package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ahrimdon/pdf417-decoder/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for the barcode API",
	Long: `Start an HTTP server that provides REST API endpoints for decoding
and generating PDF417 barcode data.

The server provides the following endpoints:
  POST /v1/decode   - Decode a payload or codeword matrix
  POST /v1/generate - Generate a symbol from record fields
  GET  /healthz     - Health check endpoint
  GET  /metrics     - Prometheus metrics

Examples:
  pdf417 serve
  pdf417 serve --port 8080
  pdf417 serve --host 0.0.0.0 --port 3000`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}

		apiServer := server.NewServer(cfg.Server, slog.Default())
		mux := http.NewServeMux()
		apiServer.SetupRoutes(mux)

		httpServer := &http.Server{
			Addr:              apiServer.Addr(),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		go func() {
			slog.Info("Starting API server", "host", cfg.Server.Host, "port", cfg.Server.Port)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("Server error", "error", err)
				cancel()
			}
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal", "signal", sig.String())
		case <-ctx.Done():
			slog.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		slog.Info("Server shutdown completed")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("host", "localhost", "host to bind the server to")
	serveCmd.Flags().Int("port", 8080, "port to bind the server to")
	serveCmd.Flags().Int("read-timeout", 30, "read timeout in seconds")
	serveCmd.Flags().Int("write-timeout", 30, "write timeout in seconds")
	serveCmd.Flags().Int64("max-body-bytes", 1<<20, "maximum request body size in bytes")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.read_timeout_sec", serveCmd.Flags().Lookup("read-timeout"))
	_ = viper.BindPFlag("server.write_timeout_sec", serveCmd.Flags().Lookup("write-timeout"))
	_ = viper.BindPFlag("server.max_body_bytes", serveCmd.Flags().Lookup("max-body-bytes"))

	rootCmd.AddCommand(serveCmd)
}
