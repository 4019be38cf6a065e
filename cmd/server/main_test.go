package main

import (
	"strings"
	"testing"

	"trip-itinerary-service/internal/platform/logger"
)

// A set DATABASE_URL must reach the Postgres driver. A malformed URL fails
// inside pgx while parsing the config, which proves the driver is wired;
// an "unknown driver" failure would mean the server binary cannot talk to
// Postgres at all.
func TestOpenRepositoryPostgresBranch(t *testing.T) {
	t.Setenv("DATABASE_URL", "://not-a-postgres-url")

	conn, _, err := openRepository(logger.NewNop())
	if err == nil {
		conn.Close()
		t.Fatal("expected error for malformed DATABASE_URL")
	}
	if strings.Contains(err.Error(), "unknown driver") {
		t.Fatalf("pgx driver not registered: %v", err)
	}
}
