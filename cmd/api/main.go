package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ReqLens-25-26J-441/req-lens-backend/config"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/bootstrap"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	var sqlDB *sql.DB
	var pool *pgxpool.Pool
	if cfg.Database.DSN != "" {
		sqlDB, err = postgres.NewConnection(cfg.Database.DSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer sqlDB.Close()

		pool, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
		if err != nil {
			log.Fatalf("postgres pool: %v", err)
		}
		defer pool.Close()
	}

	deps := bootstrap.RouterDeps{
		ServiceName: "req-lens-backend",
		Version:     cfg.App.Version,
		APIKey:      cfg.Server.APIKey,
		Redis:       rdb,
		SQLDB:       sqlDB,
		Pool:        pool,
	}
	stores := bootstrap.BuildStores(deps)

	if cfg.App.DemoMode {
		if err := bootstrap.SeedDemo(ctx, stores); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}
	if cfg.App.SeedFile != "" {
		if err := bootstrap.SeedFromFile(ctx, stores, cfg.App.SeedFile); err != nil {
			log.Fatalf("seed file: %v", err)
		}
	}

	r := bootstrap.BuildRouter(deps, stores)

	log.Printf("listening on :%s", cfg.Server.Port)
	log.Fatal(r.Run(":" + cfg.Server.Port))
}
