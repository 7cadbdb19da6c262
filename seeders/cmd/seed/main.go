package main

import (
	"context"
	"log"

	"hr-system/pkg/config"
	"hr-system/pkg/database/postgresql"
	"hr-system/seeders"
)

func main() {
	cfg := config.New()

	db, err := postgresql.Connect(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	seeders.SeedDictionaries(db)
	seeders.SeedAdmin(db)
}
