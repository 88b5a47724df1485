// Command migrate manages the analysis history schema.
//
//	migrate [up|down|status|version|redo|reset]
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeiq-api/internal/config"
	"github.com/yourusername/resumeiq-api/internal/repository"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	command := "up"
	var args []string
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	if err := repository.RunMigrationCommand(cfg.DatabaseURL, command, args...); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("Migration failed")
	}
	log.Info().Str("command", command).Msg("Migration complete")
}
