package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/server"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/studio"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the presentation server with the browser studio",
	Long:  `Starts the slidegen HTTP server: the session REST API plus the browser studio with a live editing websocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		engine, database, err := openEngine(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		port := cfg.Server.Port
		if serverPort > 0 {
			port = serverPort
		}

		srv := server.New(server.Config{
			Host:     cfg.Server.Host,
			Port:     port,
			AllowAll: true,
		}, database, engine)

		// Browser studio: landing page, stats API and the live websocket.
		studio.New(engine).RegisterRoutes(srv.Router())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "slidegen server v%s starting on %s:%d\n", Version, cfg.Server.Host, port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.Database)
		fmt.Fprintf(os.Stderr, "  Provider: %s (%s)\n", cfg.Provider, cfg.Model)

		return srv.Start()
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
