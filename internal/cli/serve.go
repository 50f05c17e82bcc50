package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lmoreno/readmegen/internal/config"
	"github.com/lmoreno/readmegen/internal/server"
	"github.com/lmoreno/readmegen/pkg/github"
	"github.com/lmoreno/readmegen/pkg/profile"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the readmegen HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			builder := profile.NewBuilder(github.NewClient(cfg.GitHub.Token), cfg.Limits(), c.Logger)
			srv := server.New(builder, newComposer(), c.Logger)

			httpServer := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", cfg.Server.Addr)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				c.Logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default :8080, or READMEGEN_ADDR)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path (default readmegen.toml if present)")

	return cmd
}
