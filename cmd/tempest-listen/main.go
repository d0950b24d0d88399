package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/davethiede/libtempest/internal/monitor"
)

var (
	rootCmd = &cobra.Command{
		Use:   "tempest-listen",
		Short: "Monitor WeatherFlow Tempest UDP broadcasts",
		Long: "tempest-listen reads tempest JSON packets broadcast by the station hub\n" +
			"and displays the decoded records. The default address receives packets\n" +
			"broadcast on the local subnet on port 50222.",
		Args: cobra.NoArgs,
		RunE: run,
	}

	addr        string
	bufSize     int
	count       int
	mode        string
	metricsAddr string
)

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", envOrDefault("TEMPEST_ADDR", "0.0.0.0:50222"), "listen addr:port")
	rootCmd.Flags().IntVar(&bufSize, "bufsize", envOrDefaultInt("TEMPEST_BUFSIZE", 400), "packet buffer size; must hold an entire packet")
	rootCmd.Flags().IntVar(&count, "count", 0, "exit after processing this many packets (0 = run forever)")
	rootCmd.Flags().StringVar(&mode, "mode", string(monitor.ModeStruct), "display mode: struct, parsed or raw")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this addr (disabled when empty)")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	displayMode := monitor.Mode(mode)
	switch displayMode {
	case monitor.ModeStruct, monitor.ModeParsed, monitor.ModeRaw:
	default:
		return fmt.Errorf("unknown display mode %q", mode)
	}
	if bufSize <= 0 {
		return fmt.Errorf("bufsize must be positive, got %d", bufSize)
	}

	logger := logrus.StandardLogger()
	reg := prometheus.NewRegistry()
	metrics := monitor.NewMetrics(reg)
	if metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	m := monitor.New(monitor.Config{
		Addr:    addr,
		BufSize: bufSize,
		Count:   count,
		Mode:    displayMode,
	}, logger, metrics, os.Stdout)
	return m.Run(cmd.Context())
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
