package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/undeconstructed/quintet/client"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:9000", "server address")
	hotseat := flag.Bool("hotseat", false, "play all five seats locally, no server")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	if *hotseat {
		err = client.NewHotseat().Run(ctx)
	} else {
		err = client.NewClient(*addr).Run(ctx)
	}
	if err != nil {
		log.Error().Err(err).Msg("client return")
		os.Exit(1)
	}
}
