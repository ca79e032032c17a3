package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/aegisgate/aegis/internal/mockapi"
)

func main() {
	var addr string
	var debug bool

	flag.StringVar(&addr, "addr", "0.0.0.0:5000", "listen address")
	flag.BoolVar(&debug, "debug", false, "enable per-request debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	srv := mockapi.NewServer(addr, log)
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("failed to start mock backend")
	}
	log.Info().Str("addr", addr).Msg("mock backend listening")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutting down")
	if err := srv.Stop(); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
