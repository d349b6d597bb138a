package main

import (
	"context"
	"fmt"

	"comprobantes/internal/config"
	"comprobantes/internal/database"
	"comprobantes/internal/database/migrations"
	"comprobantes/internal/db"
	"comprobantes/internal/logger"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Comprobantes Table")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("⚠️  WARNING: This will DROP the comprobantes table!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Drop the comprobantes table")
	fmt.Println("  - Forget its applied migrations")
	fmt.Println("  - Recreate and reseed it from the embedded migrations")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	logger.Setup(logger.DefaultConfig())
	log := logger.WithComponent("reset")

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to connect to database")
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("🔄 Resetting comprobantes...")

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS comprobantes"); err != nil {
		log.Fatal().Err(err).Msg("Failed to drop comprobantes")
	}
	fmt.Println("  ✓ Dropped comprobantes")

	if err := tx.Commit(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to commit transaction")
	}

	if _, err := pool.Exec(ctx, "DELETE FROM schema_migrations WHERE filename LIKE '%comprobantes%'"); err != nil {
		log.Warn().Err(err).Msg("Failed to clear migration history")
	}

	if err := database.NewMigratorWithFS(pool, migrations.FS, ".").RunMigrations(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to rerun migrations")
	}
	fmt.Println("  ✓ Recreated and seeded comprobantes")

	var count int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM comprobantes").Scan(&count); err != nil {
		log.Fatal().Err(err).Msg("Failed to count comprobantes")
	}

	fmt.Println()
	fmt.Printf("✅ Reset successful, %d comprobantes loaded\n", count)
}
