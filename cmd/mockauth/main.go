// mockauth serves a fake user-management API from local storage, for
// developing and demoing front-ends without a real backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/beminee/mockauth/pkg/config"
	"github.com/beminee/mockauth/pkg/logging"
	"github.com/beminee/mockauth/pkg/server"
	"github.com/beminee/mockauth/pkg/store"
)

// Build-time variables set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mockauth",
		Short:         "Fake user-management backend for front-end development",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the fake backend server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			log := logging.New(logging.Config{
				Level:  logging.ParseLevel(cfg.Log.Level),
				Format: logging.ParseFormat(cfg.Log.Format),
			})

			kv, err := openStore(cfg)
			if err != nil {
				return err
			}

			srv, err := server.New(cfg, kv, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			log.Info("shutting down")
			return srv.Stop(context.Background())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (JSON or YAML)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mockauth %s (%s)\n", Version, Commit)
		},
	}
}

func openStore(cfg *config.Config) (store.KeyValue, error) {
	if cfg.DataFile == "" {
		return store.NewMemory(), nil
	}
	return store.NewFile(cfg.DataFile)
}
