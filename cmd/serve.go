package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recall HTTP server",
	Long:  `Starts the REST API server exposing ingest, search, and reset endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.Addr
		}

		eng, cleanup, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		srv := server.New(server.Config{Addr: addr, AllowAll: true}, eng)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "recall server v%s starting on %s\n", Version, addr)
		fmt.Fprintf(os.Stderr, "  Data dir: %s\n", cfg.DataDir)
		fmt.Fprintf(os.Stderr, "  Collection: %s\n", cfg.Collection)

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: configured server.addr)")
	rootCmd.AddCommand(serveCmd)
}
