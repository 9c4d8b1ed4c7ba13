// Package pglookup provides a Postgres-backed uniqueness-lookup
// capability for [modelrest.Validator]. The engine stays
// storage-agnostic; this is one injectable implementation of its
// lookup contract.
package pglookup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx

	"github.com/fadine/modelrest"
)

// Open connects to Postgres with pooling defaults suited to short
// lookup queries and verifies the connection.
func Open(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Lookup returns a [modelrest.LookupFunc] querying table for a row
// whose field equals the value. A match is returned as a map holding
// the primary-key column, which is what the validator compares against
// the instance being updated. Field names are restricted to plain
// identifiers; anything else fails rather than being interpolated.
func Lookup(db *sql.DB, table, pkColumn string) modelrest.LookupFunc {
	return func(field string, value any) (any, error) {
		if !identPattern.MatchString(table) || !identPattern.MatchString(pkColumn) || !identPattern.MatchString(field) {
			return nil, fmt.Errorf("pglookup: invalid identifier in %q.%q/%q", table, field, pkColumn)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 LIMIT 1`,
			quoteIdent(pkColumn), quoteIdent(table), quoteIdent(field))

		var pk any
		err := db.QueryRowContext(ctx, query, value).Scan(&pk)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return map[string]any{pkColumn: pk}, nil
	}
}

func quoteIdent(s string) string { return `"` + s + `"` }
