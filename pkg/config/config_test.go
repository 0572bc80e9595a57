package config

import (
	"strings"
	"testing"
)

func TestEnsureDSNKeepsExplicitDSN(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://u:p@localhost:5432/deenergy"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	if cfg.DSN != "postgres://u:p@localhost:5432/deenergy" {
		t.Fatalf("DSN rewritten: %s", cfg.DSN)
	}
}

func TestEnsureDSNBuildsFromLegacyVars(t *testing.T) {
	cfg := DBConfig{
		LegacyHost:     "db.internal",
		LegacyPort:     5433,
		LegacyUser:     "deenergy",
		LegacyPassword: "s3cret",
		LegacyName:     "energy",
		LegacySSLMode:  "require",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	for _, fragment := range []string{"postgres://", "deenergy:s3cret@", "db.internal:5433", "/energy", "sslmode=require"} {
		if !strings.Contains(cfg.DSN, fragment) {
			t.Fatalf("DSN missing %q: %s", fragment, cfg.DSN)
		}
	}
}

func TestEnsureDSNReportsMissingLegacyVars(t *testing.T) {
	cfg := DBConfig{LegacyHost: "db.internal"}
	err := cfg.ensureDSN()
	if err == nil {
		t.Fatal("expected error for missing legacy vars")
	}
	if !strings.Contains(err.Error(), EnvDBUser) || !strings.Contains(err.Error(), EnvDBName) {
		t.Fatalf("error should name missing vars: %v", err)
	}
}
