package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"skillswap/internal/app"
	"skillswap/internal/config"
	"skillswap/internal/database/migration"
	"skillswap/internal/database/seeder"
)

func main() {
	dir := flag.String("dir", "", "migrations directory (defaults to the embedded set)")
	seed := flag.Bool("seed", true, "seed the skill catalog after migrating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *dir == "" {
		*dir = cfg.App.MigrationsDir
	}

	if err := run(cfg, *dir, *seed); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func run(cfg config.Config, dir string, seed bool) error {
	logger := log.New(os.Stdout, "", log.LstdFlags)
	c, err := app.NewContainer(cfg, logger)
	if err != nil {
		return fmt.Errorf("init container: %w", err)
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	r := migration.Runner{Dir: dir, Logger: logger}
	if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if !seed {
		return nil
	}
	s := seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}
	if err := s.Run(ctx, c.DB); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	return nil
}
