package seeders

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the initial operator account. Email and password come
// from ADMIN_EMAIL / ADMIN_PASSWORD; the seeder refuses to run without an
// explicit password.
func SeedAdmin(db *pgxpool.Pool) {
	ctx := context.Background()

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@hr-system.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD is required to seed the admin user")
	}

	var existingID string
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&existingID)
	if err == nil {
		log.Printf("admin user %s already exists, skipping", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	if _, err := db.Exec(ctx,
		"INSERT INTO users (email, password_hash) VALUES ($1, $2)", email, string(hash)); err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}
	fmt.Printf("admin user %s created\n", email)
}
