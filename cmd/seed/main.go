package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/storefront-api/config"
	"github.com/oksasatya/storefront-api/internal/application"
	pginfra "github.com/oksasatya/storefront-api/internal/infrastructure/postgres"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	email := getenv("ADMIN_EMAIL", "admin@example.com")
	password := getenv("ADMIN_PASSWORD", "admin123")

	created, err := application.SeedAdmin(ctx, pginfra.NewUserRepository(pool), email, password)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if !created {
		fmt.Printf("admin user already exists: %s\n", email)
		return
	}
	fmt.Printf("admin user created: email=%s password=%s\n", email, password)
	fmt.Println("change this password after first login")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
