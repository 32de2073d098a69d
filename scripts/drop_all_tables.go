//go:build ignore

package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}
	if env == "prod" {
		log.Fatal("refusing to drop production tables")
	}
	prefix := env + "_"

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: script exiting

	dropSQL := fmt.Sprintf(`
		DROP TABLE IF EXISTS %sstatus_changes CASCADE;
		DROP TABLE IF EXISTS %ssprint_reviews CASCADE;
		DROP TABLE IF EXISTS %sconversations CASCADE;
		DROP TABLE IF EXISTS %sartifacts CASCADE;
		DROP TABLE IF EXISTS %ssprints CASCADE;
		DROP TABLE IF EXISTS %sprojects CASCADE;
		DROP TABLE IF EXISTS %sclients CASCADE;
	`, prefix, prefix, prefix, prefix, prefix, prefix, prefix)

	if _, err := db.Exec(dropSQL); err != nil {
		log.Fatalf("Failed to drop tables: %v", err)
	}

	log.Printf("Dropped all %s* tables", prefix)
}
