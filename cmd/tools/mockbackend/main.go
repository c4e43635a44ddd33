package main

import (
	"log"
	"os"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"funnelpay.com/app/internal/mockapi"
)

// mockbackend serves a local fake of the funnelpay backend REST API so the
// orchestrator and payctl can be exercised without the real service.
func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	dsn := os.Getenv("MOCK_DB_DSN")
	if dsn == "" {
		log.Fatal("MOCK_DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := mockapi.NewStore(db).AutoMigrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	addr := os.Getenv("MOCK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	r := mockapi.NewRouter(logger, db)
	logger.Info("mockbackend_listening", "addr", addr)
	_ = r.Run(addr)
}
