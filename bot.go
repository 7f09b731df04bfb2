package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"raintarget/internal/bot"
	"raintarget/internal/metrics"
)

func newBotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Answer target queries over Telegram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBot(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&a.flags.TelegramToken, "token", "", "Telegram bot token")
	cmd.Flags().Int64SliceVar(&a.flags.AllowedUsers, "allowed-users", nil, "Telegram user IDs allowed to use the bot (empty allows everyone)")
	cmd.Flags().DurationVar(&a.flags.BotTimeout, "bot-timeout", a.flags.BotTimeout, "Long-poll timeout for Telegram updates")
	cmd.Flags().BoolVar(&a.flags.Metrics, "metrics", a.flags.Metrics, "Expose Prometheus metrics on --addr/--port")
	cmd.Flags().IntVar(&a.flags.Port, "port", a.flags.Port, "Metrics listen port")
	cmd.Flags().StringVar(&a.flags.Addr, "addr", a.flags.Addr, "Metrics listen address")
	return cmd
}

func (a *app) runBot(ctx context.Context) error {
	cfg := a.cfg

	var rec *metrics.Recorder
	if cfg.Metrics {
		rec = metrics.NewRecorder()
		go serveMetrics(ctx, cfg.ListenAddr(), rec, a.logger)
	}

	b, err := bot.New(bot.Options{
		Token:          cfg.TelegramToken,
		ScheduledOvers: cfg.ScheduledOvers,
		AllowedUsers:   cfg.AllowedUsers,
		UpdateTimeout:  cfg.BotTimeout,
		Logger:         a.logger,
		Recorder:       rec,
	})
	if err != nil {
		return err
	}
	return b.Run(ctx)
}

func serveMetrics(ctx context.Context, addr string, rec *metrics.Recorder, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", addr).Msg("metrics listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server")
	}
}
