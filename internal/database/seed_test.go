package database

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed creates data only when the catalog is empty. We call it twice to
	// verify idempotency; we don't clear the database first because other
	// test packages may be running concurrently against the same database.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	// Verify the catalog has both legacy and structured entries.
	var legacyCount, structuredCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM prompt_templates WHERE base_prompt <> ''").Scan(&legacyCount); err != nil {
		t.Fatalf("count legacy templates: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM prompt_templates WHERE style IS NOT NULL AND slots IS NOT NULL").Scan(&structuredCount); err != nil {
		t.Fatalf("count structured templates: %v", err)
	}
	if legacyCount < 1 {
		t.Errorf("expected at least 1 legacy template, got %d", legacyCount)
	}
	if structuredCount < 1 {
		t.Errorf("expected at least 1 structured template, got %d", structuredCount)
	}
}
