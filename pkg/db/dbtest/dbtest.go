// Package dbtest opens throwaway in-memory databases for service and
// controller tests. The schema mirrors the goose migrations, rendered in
// sqlite-compatible DDL.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var schema = []string{
	`CREATE TABLE agents (
		id text PRIMARY KEY,
		name text NOT NULL,
		email text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		phone text,
		license_number text UNIQUE,
		is_active numeric NOT NULL DEFAULT 1,
		created_at datetime NOT NULL,
		updated_at datetime NOT NULL
	)`,
	`CREATE TABLE listings (
		id text PRIMARY KEY,
		price real NOT NULL,
		address text NOT NULL,
		square_feet real NOT NULL,
		zip_code text NOT NULL,
		status text NOT NULL DEFAULT 'active',
		images text,
		created_by text REFERENCES agents (id),
		created_at datetime NOT NULL,
		updated_at datetime NOT NULL
	)`,
	`CREATE TABLE showings (
		id text PRIMARY KEY,
		listing_id text NOT NULL REFERENCES listings (id) ON DELETE CASCADE,
		name text NOT NULL,
		email text NOT NULL,
		phone text NOT NULL,
		preferred_date datetime NOT NULL,
		message text NOT NULL DEFAULT '',
		status text NOT NULL DEFAULT 'pending',
		feedback text NOT NULL DEFAULT '',
		scheduled_at datetime,
		created_at datetime NOT NULL,
		updated_at datetime NOT NULL
	)`,
}

// Open returns an isolated in-memory database with the full schema applied.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}

	for _, stmt := range schema {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("applying schema: %v", err)
		}
	}

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return conn
}
