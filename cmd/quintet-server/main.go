package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/undeconstructed/quintet/server"
)

func main() {
	addr := flag.String("addr", "0.0.0.0:9000", "tcp listen address")
	web := flag.String("web", "0.0.0.0:9001", "web listen address")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	srv := server.NewServer(server.Options{
		TCPAddr: *addr,
		WebAddr: *web,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := srv.Run(ctx)
	log.Info().Err(err).Msg("server return")
	if err != nil {
		os.Exit(1)
	}
}
