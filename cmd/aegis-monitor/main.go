package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aegisgate/aegis/internal/gateway"
	"github.com/aegisgate/aegis/internal/model"
	"github.com/aegisgate/aegis/internal/monitor"
)

func main() {
	var apiURL string
	var token string
	var interval time.Duration
	var timeout time.Duration
	var debug bool

	flag.StringVar(&apiURL, "api-url", "http://localhost:5000/api", "backend API base URL")
	flag.StringVar(&token, "api-token", "", "bearer token for the backend")
	flag.DurationVar(&interval, "interval", model.DefaultRefreshInterval, "poll interval")
	flag.DurationVar(&timeout, "timeout", model.DefaultRequestTimeout, "per-request timeout")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	gw := gateway.New(gateway.Config{
		BaseURL: apiURL,
		Timeout: timeout,
		Token:   func() string { return token },
		Logger:  log,
	})

	m := monitor.New(gw, nil, interval, timeout, log)
	m.Start(context.Background())
	log.Info().Str("api_url", apiURL).Dur("interval", interval).Msg("monitor started")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutting down")
	m.Stop()
}
