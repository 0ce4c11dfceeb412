package testutil

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"jishodash/lib/telemetry"

	_ "modernc.org/sqlite"
)

type ServiceParams struct {
	Name string
	// if unspecified, it will skip setting up a db
	DbSchema string
	// if unspecified, it will use `:memory:`
	DbPath string
}

type ServiceResult struct {
	DB *sql.DB
}

// SetupService prepares telemetry and an in-memory sqlite database for a
// service test.
func SetupService(t testing.TB, params ServiceParams) (ServiceResult, func()) {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	if params.DbSchema == "" {
		return ServiceResult{}, cleanup
	}

	dbpath := params.DbPath
	if dbpath == "" {
		dbpath = ":memory:"
	}
	sqlite, err := sql.Open("sqlite", dbpath)
	if err != nil {
		t.Fatal(err)
	}
	// a `:memory:` database exists per connection, the pool must never
	// open a second one
	sqlite.SetMaxOpenConns(1)
	_, err = sqlite.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		t.Fatal(err)
	}
	_, err = sqlite.Exec(params.DbSchema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatal(err)
	}

	return ServiceResult{DB: sqlite}, func() {
		sqlite.Close()
		cleanup()
	}
}
