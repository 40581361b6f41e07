package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"s3fetch/cmd"
	"s3fetch/config"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cnf, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cmd.Execute(cnf); err != nil {
		if errors.Is(err, cmd.ErrNoAction) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
