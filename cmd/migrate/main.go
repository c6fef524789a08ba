package main

import (
	"errors"
	"flag"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/GaborIreHun/flightmanager/config"
	"github.com/GaborIreHun/flightmanager/internal/logger"
)

// Usage: migrate [-config path] up|down|version
func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to config file")
	flag.Parse()
	if *cfgPath == "" {
		*cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		logger.Bootstrap("flightmanager-migrate").Fatal().Err(err).Str("path", *cfgPath).Msg("load config")
	}
	log := logger.New(cfg.Log, cfg.App.Name+"-migrate")

	m, err := migrate.New("file://"+cfg.Database.MigrationsDir, cfg.Database.URL())
	if err != nil {
		log.Fatal().Err(err).Msg("open migrations")
	}
	defer m.Close()

	switch cmd := flag.Arg(0); cmd {
	case "", "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatal().Err(verr).Msg("read version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("schema version")
		return
	default:
		log.Fatal().Str("command", cmd).Msg("unknown command, want up, down or version")
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Msg("migrations applied")
}
