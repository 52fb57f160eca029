package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/api"
	"github.com/abhisek/kotoba/internal/api/validate"
	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/session"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the practice engine over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if addr, _ := cmd.Flags().GetString("listen"); addr != "" {
			e.config.Set("api.listen", addr)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st := e.appState(ctx)
		defer st.Close()

		server := api.NewAPI(e.config, e.log)
		api.Setup(&api.RouteConfig{
			Api:        server,
			Middleware: api.NewMiddleware(e.config, e.log),
			Handler: api.NewHandler(api.HandlerConfig{
				Store:         st,
				Bank:          bank.Default(bank.NewRand()),
				Generators:    e.providers(),
				Rand:          bank.NewRand(),
				Validator:     validate.NewValidator(),
				Log:           e.log,
				PracticeCount: e.config.GetInt("practice.count"),
				TryoutCount:   e.config.GetInt("tryout.count"),
				Source:        e.source(),
			}),
		})

		listenAddr := e.config.GetString("api.listen")
		errCh := make(chan error, 1)
		go func() {
			e.log.WithField("addr", listenAddr).Info("listening")
			errCh <- server.Listen(listenAddr)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		e.log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.ShutdownWithContext(shutdownCtx); err != nil {
			e.log.WithError(err).Error("API shutdown error")
		}

		if st.State().Session.Phase != session.PhaseIdle {
			if _, err := st.Dispatch(appstate.EndSession{SaveHistory: true}); err != nil {
				e.log.WithError(err).Warn("failed to end session on shutdown")
			}
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "Listen address (default: api.listen)")
}
