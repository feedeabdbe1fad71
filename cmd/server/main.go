package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	httpapi "chessrooms/internal/api/http"
	"chessrooms/internal/api/ws"
	"chessrooms/internal/config"
	"chessrooms/internal/engine"
	"chessrooms/internal/room"
)

const releaseVersion = "0.1.0"

func main() {
	cobra.CheckErr(newCmd().Execute())
}

func newCmd() *cobra.Command {
	cfg := config.Default()

	v := viper.New()
	v.SetEnvPrefix("CHESSROOMS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "chessrooms",
		Short:         "Real-time multiplayer chess session coordinator.",
		Args:          cobra.ExactArgs(0),
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&cfg.Bind, "bind", "b", cfg.Bind, "address to bind to (env: CHESSROOMS_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on (env: CHESSROOMS_PORT)")
	fs.StringVar(&cfg.PublicURL, "public-url", "", "external base URL used in share links (env: CHESSROOMS_PUBLIC_URL)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "display additional output (env: CHESSROOMS_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("chessrooms v{{.Version}}\n")

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	eng := engine.NewChess()
	hub := ws.NewHub()
	registry := room.NewRegistry(eng, hub)
	coordinator := room.NewCoordinator(registry)
	hub.SetCoordinator(coordinator)

	router := httpapi.NewRouter(cfg, hub, registry, releaseVersion)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("chessrooms v%s listening on %s", releaseVersion, cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("serve: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
