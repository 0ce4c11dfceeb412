package configsqlite

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Struct describes a sqlite-compatible database: either a local file
// (pure-Go driver) or a remote libsql/turso url.
type Struct struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

// OpenDB opens the database and applies the given schema. Local files get
// the foreign_keys pragma turned on, the words/glosses cascade delete
// depends on it.
func (config Struct) OpenDB(schema string) (*sql.DB, error) {
	db, err := config.open()
	if err != nil {
		return nil, err
	}
	// sqlite is single-writer and pragmas are per-connection, a pool of
	// one keeps the foreign_keys setting in force everywhere
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return nil, err
	}
	return db, nil
}

func (config Struct) open() (*sql.DB, error) {
	if config.Url == "" {
		if config.File == "" {
			return nil, fmt.Errorf("neither a database file nor a url was specified")
		}
		return sql.Open("sqlite", config.File)
	}

	values := url.Values{}
	if config.AuthToken != "" {
		values.Add("authToken", config.AuthToken)
	}
	return sql.Open("libsql", config.Url+"?"+values.Encode())
}
