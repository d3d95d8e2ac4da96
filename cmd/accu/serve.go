package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/accu-org/accu-website/web"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the members-only journal pages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := slog.Default()

		secret := viper.GetString("web.secret")
		if secret == "" {
			return fmt.Errorf("web.secret is not configured")
		}

		checker, err := openChecker(ctx)
		if err != nil {
			return err
		}
		defer checker.Close()

		srv, err := web.New(checker, web.Config{
			Secret: []byte(secret),
			Pages:  os.DirFS(viper.GetString("web.pages")),
			Secure: viper.GetBool("web.secure"),
			Logger: logger,
		})
		if err != nil {
			return err
		}

		return listenAndServe(ctx, viper.GetString("web.addr"), srv, logger)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().String("pages", "", "directory of pre-rendered journal pages")
	serveCmd.Flags().Bool("secure", false, "mark cookies as HTTPS only")
	bindFlags("web", serveCmd.Flags(), "addr", "pages", "secure")

	rootCmd.AddCommand(serveCmd)
}

// listenAndServe runs handler on addr until ctx is done, then shuts down
// gracefully.
func listenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", addr))
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
