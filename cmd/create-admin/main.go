// Command create-admin adds an admin account to the Postgres row store.
//
//	create-admin -email admin@example.com -password '...'
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"dnl-site-backend-go/internal/db"
	"dnl-site-backend-go/internal/gateway"
	"dnl-site-backend-go/internal/migrations"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	email := flag.String("email", "", "admin e-mail")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (defaults to ADMIN_PASSWORD)")
	migrationsDir := flag.String("migrations", envOr("MIGRATIONS_DIR", "migrations"), "migrations directory")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: create-admin -email <email> -password <password>")
		os.Exit(2)
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	database, err := db.Open(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()
	if err := migrations.Apply(ctx, database, os.DirFS(*migrationsDir)); err != nil {
		fmt.Fprintf(os.Stderr, "migrations: %v\n", err)
		os.Exit(1)
	}

	// Token settings are irrelevant here; only the password hashing is used.
	auth := gateway.NewPasswordAuth(gateway.NewPostgresTables(database), gateway.Tokens{Secret: []byte("unused")})
	id, err := auth.CreateUser(ctx, *email, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("admin %s created with id %s\n", *email, id)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
