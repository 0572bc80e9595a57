package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-energymain/buy-electricity-sub000/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %s", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestUsersMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_users.sql")

	checks := []string{
		"CREATE TABLE users",
		"CREATE UNIQUE INDEX users_wallet_id_key ON users (wallet_id)",
		"notify_transactions boolean NOT NULL DEFAULT true",
		"DROP TABLE users",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestPurchasesMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_purchases.sql")

	checks := []string{
		"CREATE TABLE purchases",
		"CREATE UNIQUE INDEX purchases_tx_hash_key ON purchases (tx_hash)",
		"DROP TABLE purchases",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestEnergyReadingsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_energy_readings.sql")

	checks := []string{
		"CREATE TABLE energy_readings",
		"CREATE UNIQUE INDEX energy_readings_measured_at_key ON energy_readings (measured_at)",
		"DROP TABLE energy_readings",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
