package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Tiliavir/curriculo/internal/mockapi"
)

func newMockAPICmd(s *session) *cobra.Command {
	var (
		addr string
		seed bool
	)
	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Serve an in-memory résumé backend for local development",
		Long: `mock-api serves the same REST routes as the real backend from memory.
Point the app at it with --api-url http://localhost:8080.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var middleware []gin.HandlerFunc
			if s.verbose {
				middleware = append(middleware, gin.LoggerWithWriter(cmd.ErrOrStderr()))
			}
			api := mockapi.New(middleware...)
			if seed {
				api.SeedSample(s.cfg.API.OwnerID)
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving mock résumé API on %s (owner %s)\n", addr, s.cfg.API.OwnerID)
			if err := serve(cmd.Context(), srv); err != nil {
				return fmt.Errorf("mock API: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().BoolVar(&seed, "seed", true, "Start with a sample profile for the configured owner")
	return cmd
}

// serve runs srv until ctx is done or the listener fails, and returns once
// the server has shut down.
func serve(ctx context.Context, srv *http.Server) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
