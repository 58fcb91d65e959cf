// Seeds the built-in roles and the initial admin account. Safe to run
// repeatedly: everything is upserted by its natural key.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type seedRole struct {
	name        string
	description string
	system      bool
}

var roles = []seedRole{
	{name: "Admin", description: "Full access to administration", system: true},
	{name: "Dispatcher", description: "Schedules and tracks yard moves", system: false},
	{name: "Viewer", description: "Read-only access", system: false},
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	email := getenvDefault("SEED_ADMIN_EMAIL", "admin@yardops.local")
	password := getenvDefault("SEED_ADMIN_PASSWORD", "Admin1234!")

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	now := time.Now().UTC()

	for _, role := range roles {
		_, err := db.Exec(`
			INSERT INTO roles (id, name, description, status, is_system_role, created_on)
			VALUES ($1, $2, $3, 'Active', $4, $5)
			ON CONFLICT (name) DO UPDATE SET
			  description = EXCLUDED.description,
			  is_system_role = EXCLUDED.is_system_role
		`, uuid.New().String(), role.name, role.description, role.system, now)
		if err != nil {
			log.Fatalf("failed to seed role %s: %v", role.name, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (id, email, password, first_name, last_name, role, status,
			email_confirmed, created_on, updated_on)
		VALUES ($1, $2, $3, 'System', 'Administrator', 'Admin', 'Active', TRUE, $4, $4)
		ON CONFLICT (email) DO UPDATE SET
		  password = EXCLUDED.password,
		  role = EXCLUDED.role,
		  status = EXCLUDED.status,
		  updated_on = EXCLUDED.updated_on
		RETURNING id
	`, uuid.New().String(), email, string(hash), now).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	fmt.Printf("Seeded admin: email=%s id=%s\n", email, id)
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
