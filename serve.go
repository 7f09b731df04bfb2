package main

import (
	"fmt"
	"io"
	"net"

	"github.com/spf13/cobra"

	"raintarget/internal/config"
	"raintarget/internal/metrics"
	"raintarget/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd)
		},
	}
	cmd.Flags().IntVar(&a.flags.Port, "port", a.flags.Port, "Listen port (0 picks a free port)")
	cmd.Flags().StringVar(&a.flags.Addr, "addr", a.flags.Addr, "Listen address (empty for all interfaces)")
	cmd.Flags().BoolVar(&a.flags.Metrics, "metrics", a.flags.Metrics, "Expose Prometheus metrics on /metrics")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command) error {
	cfg := a.cfg

	var rec *metrics.Recorder
	if cfg.Metrics {
		rec = metrics.NewRecorder()
	}
	srv := web.New(web.Options{
		Version:        appVersion,
		ScheduledOvers: cfg.ScheduledOvers,
		Logger:         a.logger,
		Recorder:       rec,
	})

	ctx := cmd.Context()
	if a.cfgPath != "" && config.FileExists(a.cfgPath) {
		w := config.NewWatcher(a.cfgPath, a.flags, a.changed, a.logger, reloadDefaults(srv))
		go func() {
			if err := w.Run(ctx); err != nil {
				a.logger.Warn().Err(err).Msg("config watcher stopped")
			}
		}()
	}

	ln, err := net.Listen("tcp", cfg.ListenAddr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.ListenAddr(), err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	printListenAddrs(cmd.OutOrStdout(), cfg.Addr, port)

	return srv.Serve(ctx, ln)
}

// reloadDefaults applies a reloaded config to srv. The watcher logs the reload.
func reloadDefaults(srv *web.Server) func(config.Config) {
	return func(c config.Config) {
		srv.SetDefaults(c.ScheduledOvers)
	}
}

func printListenAddrs(w io.Writer, host string, port int) {
	fmt.Fprintln(w, "Listening on:")
	if host != "" && host != "0.0.0.0" && host != "::" {
		fmt.Fprintf(w, "  http://%s/\n\n", net.JoinHostPort(host, fmt.Sprint(port)))
		return
	}
	fmt.Fprintf(w, "  http://127.0.0.1:%d/\n", port)

	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, addr := range addrs {
			ip, _, err := net.ParseCIDR(addr.String())
			if err != nil || ip == nil || ip.IsLoopback() || ip.To4() == nil {
				continue
			}
			fmt.Fprintf(w, "  http://%s:%d/\n", ip.String(), port)
		}
	}
	fmt.Fprintln(w)
}
