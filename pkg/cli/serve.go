package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/riskscope/pkg/cli/config"
	httpctrl "github.com/secmon-lab/riskscope/pkg/controller/http"
	"github.com/secmon-lab/riskscope/pkg/service/worker"
	"github.com/secmon-lab/riskscope/pkg/usecase"
	"github.com/secmon-lab/riskscope/pkg/utils/logging"
	"github.com/secmon-lab/riskscope/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

func cmdServe() *cli.Command {
	var addr string
	var refreshInterval time.Duration
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RISKSCOPE_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "refresh-interval",
			Usage:       "Interval to pick up scoring configurations saved by other instances (0 disables)",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("RISKSCOPE_REFRESH_INTERVAL"),
			Destination: &refreshInterval,
		},
	}

	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			flush, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flush()

			riskCfg, seed, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load configuration")
			}
			if riskCfg == nil {
				logger.Warn("No configuration file given, category and team IDs are not checked")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo,
				usecase.WithRiskConfig(riskCfg),
				usecase.WithSeedScoringConfig(seed),
			)
			if err := uc.Scoring.Load(ctx); err != nil {
				return goerr.Wrap(err, "failed to load scoring configuration")
			}

			var reloader *config.Reloader
			if path := appCfg.Path(); path != "" {
				reloader, err = config.NewReloader(path, func(ctx context.Context, cfg *config.AppConfig) {
					uc.Risk.SetRiskConfig(cfg.ToDomainRiskConfig())
				})
				if err != nil {
					return goerr.Wrap(err, "failed to watch configuration file")
				}
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpctrl.WithSentry(sentryCfg.IsConfigured())),
				ReadHeaderTimeout: 30 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, ctx := errgroup.WithContext(ctx)

			eg.Go(func() error {
				logger.Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server", goerr.V("addr", addr))
				}
				return nil
			})

			eg.Go(func() error {
				<-ctx.Done()
				logger.Info("Shutting down HTTP server")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				return nil
			})

			if refreshInterval > 0 {
				refresher := worker.NewConfigRefreshWorker(uc.Scoring, refreshInterval)
				if err := refresher.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start config refresh worker")
				}
				eg.Go(func() error {
					<-ctx.Done()
					refresher.Stop()
					return nil
				})
			}

			if reloader != nil {
				eg.Go(func() error {
					return reloader.Run(ctx)
				})
			}

			if err := eg.Wait(); err != nil {
				return err
			}

			logger.Info("Server shutdown completed")
			return nil
		},
	}
}
