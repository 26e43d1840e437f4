// Command seed creates the initial admin account. Reference data
// (roles, causes) is seeded by the migrations; this only needs to run
// once per environment, before the first admin login.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/causeshare-api/internal/config"
	"github.com/causeshare-api/internal/database"
	"github.com/causeshare-api/internal/repository"
	"github.com/causeshare-api/internal/service"
	"github.com/causeshare-api/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "", "admin email (falls back to ADMIN_EMAIL)")
	password := flag.String("password", "", "admin password (falls back to ADMIN_PASSWORD)")
	flag.Parse()

	_ = godotenv.Load()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if *email == "" {
		*email = cfg.Auth.AdminEmail
	}
	if *password == "" {
		*password = cfg.Auth.AdminPassword
	}
	if *email == "" || *password == "" {
		log.Fatal().Msg("admin email and password are required (flags or ADMIN_EMAIL/ADMIN_PASSWORD)")
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	repos := repository.New(db)
	services := service.NewServices(repos, cfg, log)

	if err := services.Auth.BootstrapAdmin(context.Background(), *email, *password); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap admin user")
	}

	log.Info().Str("email", *email).Msg("Seed completed")
}
