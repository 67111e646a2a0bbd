package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	"github.com/ReqLens-25-26J-441/req-lens-backend/config"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/bootstrap"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/storage/postgres"
)

// Loads the demo account and optional YAML fixtures into the store without
// starting the API.
func main() {
	file := flag.String("file", "", "YAML fixture file to load after the demo data")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	// Same store selection as cmd/api: a configured DSN means users and
	// projects live in postgres, and the seed has to land there too.
	var sqlDB *sql.DB
	if cfg.Database.DSN != "" {
		sqlDB, err = postgres.NewConnection(cfg.Database.DSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer sqlDB.Close()
	}

	stores := bootstrap.BuildStores(bootstrap.RouterDeps{Redis: rdb, SQLDB: sqlDB})

	if err := bootstrap.SeedDemo(ctx, stores); err != nil {
		log.Fatalf("seed: %v", err)
	}

	path := *file
	if path == "" {
		path = cfg.App.SeedFile
	}
	if path != "" {
		if err := bootstrap.SeedFromFile(ctx, stores, path); err != nil {
			log.Fatalf("seed file: %v", err)
		}
	}

	log.Println("seed complete")
}
