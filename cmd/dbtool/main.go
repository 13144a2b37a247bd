package main

import (
	"context"
	"flag"
	"log"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
	"time"

	"github.com/joho/godotenv"
)

// dbtool prepares the database schema ahead of a deploy. It also prunes old
// run history when -prune-older-than is set.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	pruneOlderThan := flag.Duration("prune-older-than", 0, "delete route runs older than this age (0 keeps everything)")
	flag.Parse()

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()

	log.Println("Initializing database schema...")
	if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *pruneOlderThan > 0 {
		cutoff := time.Now().Add(-*pruneOlderThan)
		n, err := repositories.NewSQLRouteRunRepository(conn).PruneBefore(ctx, cutoff)
		if err != nil {
			log.Fatalf("prune failed: %v", err)
		}
		log.Printf("Pruned %d route runs created before %s.", n, cutoff.Format(time.RFC3339))
	}
}
