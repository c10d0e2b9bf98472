package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/mentorbit/lms-api/config"
	"github.com/mentorbit/lms-api/pkg/helpers"
)

// seed provisions the baseline access-control data and a demo admin
// account. Safe to run repeatedly; every statement upserts.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	var groupID string
	if err := db.QueryRow(`
		INSERT INTO permission_groups (name) VALUES ('administration')
		ON CONFLICT (name) DO UPDATE SET updated_at = now()
		RETURNING id
	`).Scan(&groupID); err != nil {
		log.Fatalf("failed to upsert permission group: %v", err)
	}

	permNames := []string{
		"roles.manage",
		"permissions.manage",
		"tiers.manage",
		"users.manage",
		"courses.manage",
	}
	permIDs := make([]string, 0, len(permNames))
	for _, name := range permNames {
		var id string
		if err := db.QueryRow(`
			INSERT INTO permissions (name, guard, group_id) VALUES ($1, 'api', $2)
			ON CONFLICT (name, group_id) DO UPDATE SET updated_at = now()
			RETURNING id
		`, name, groupID).Scan(&id); err != nil {
			log.Fatalf("failed to upsert permission %s: %v", name, err)
		}
		permIDs = append(permIDs, id)
	}
	fmt.Printf("permissions ensured: %v\n", permNames)

	var adminRoleID, memberRoleID string
	if err := db.QueryRow(`
		INSERT INTO roles (name, guard) VALUES ('admin', 'api')
		ON CONFLICT (name) DO UPDATE SET updated_at = now()
		RETURNING id
	`).Scan(&adminRoleID); err != nil {
		log.Fatalf("failed to upsert admin role: %v", err)
	}
	if err := db.QueryRow(`
		INSERT INTO roles (name, guard) VALUES ('member', 'api')
		ON CONFLICT (name) DO UPDATE SET updated_at = now()
		RETURNING id
	`).Scan(&memberRoleID); err != nil {
		log.Fatalf("failed to upsert member role: %v", err)
	}
	for _, pid := range permIDs {
		if _, err := db.Exec(`
			INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)
			ON CONFLICT (role_id, permission_id) DO NOTHING
		`, adminRoleID, pid); err != nil {
			log.Fatalf("failed to link permission to admin role: %v", err)
		}
	}
	fmt.Printf("roles ensured: admin=%s member=%s\n", adminRoleID, memberRoleID)

	for _, tier := range []string{"free", "pro"} {
		if _, err := db.Exec(`
			INSERT INTO tiers (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING
		`, tier); err != nil {
			log.Fatalf("failed to upsert tier %s: %v", tier, err)
		}
	}
	fmt.Println("tiers ensured: free, pro")

	email := "admin@mentorbit.dev"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	if err := db.QueryRow(`
		INSERT INTO users (email, password_hash, name, avatar_url)
		VALUES ($1, $2, $3, '')
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, "Admin").Scan(&userID); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`, userID, adminRoleID); err != nil {
		log.Fatalf("failed to assign admin role: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", userID, email, password)
}
