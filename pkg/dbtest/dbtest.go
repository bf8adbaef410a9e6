package dbtest

import (
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"
)

// EnvDSN names the variable holding the integration test database DSN.
const EnvDSN = "TEST_PG_DSN"

// DSN returns the test database DSN or skips the test when it is not set.
func DSN(t *testing.T) string {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s is not set", EnvDSN)
	}

	return dsn
}

// Connect opens the test database and closes it on cleanup. Tables listed
// in truncate are emptied before the test runs.
func Connect(t *testing.T, truncate ...string) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("pgx", DSN(t))
	if err != nil {
		t.Fatalf("sqlx.Connect: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })

	for _, table := range truncate {
		if _, err = db.Exec("TRUNCATE TABLE " + table); err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}

	return db
}
