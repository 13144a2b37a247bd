package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/adapters/routing"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or SQLite, OSRM, Redis) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	conn, runs, routeCache, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	osrm, err := routing.NewOSRMProvider(routing.OSRMOptions{
		BaseURL:         cfg.OSRMBaseURL,
		Profile:         cfg.OSRMProfile,
		RatePerSec:      cfg.OSRMRatePerSec,
		MatrixTimeout:   cfg.MatrixTimeout,
		GeometryTimeout: cfg.GeometryTimeout,
	})
	if err != nil {
		log.Fatal(err)
	}

	// Redis is preferred for the route cache when configured; the database
	// table is the fallback.
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisRouteCache(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer rc.Close()
		routeCache = rc
		log.Println("route cache backend=redis")
	}

	provider := cache.NewCachedCostProvider(osrm, routeCache, cfg.CacheTTL)
	optimizer := services.NewRouteOptimizer(provider)

	obs.RegisterDefault()
	router := api.NewRouter(optimizer, runs, conn)

	// Write timeout leaves room for a full matrix call plus a geometry call.
	log.Printf("Server listening addr=:%s osrm=%s", cfg.Port, cfg.OSRMBaseURL)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.MatrixTimeout + cfg.GeometryTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStorage connects to Postgres when DATABASE_URL is set and to the
// local SQLite file otherwise, and makes sure the schema exists.
func openStorage(ctx context.Context, cfg config.Config) (*sql.DB, ports.RouteRunRepository, ports.RouteCache, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, nil, fmt.Errorf("open storage: %w", err)
		}
		log.Println("storage backend=postgres")
		return conn, repositories.NewSQLRouteRunRepository(conn), cache.NewSQLRouteCache(conn), nil
	}

	conn, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := repositories.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, nil, fmt.Errorf("open storage: %w", err)
	}
	log.Printf("storage backend=sqlite path=%s", cfg.DBPath)
	return conn, repositories.NewSqliteRouteRunRepository(conn), cache.NewSqliteRouteCache(conn), nil
}
