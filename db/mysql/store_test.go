package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	db2 "github.com/sociallyapp/socially-be/db"
	"github.com/upper/db/v4/adapter/sqlite"
)

// The store is exercised against in-memory sqlite: same upper/db query
// builder, no server dependency. Statements stick to portable SQL so the one
// implementation serves both engines.
var testSchema = []string{
	`CREATE TABLE person (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		bio TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		onboarded INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE community (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE thread (
		id TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		author_id TEXT NOT NULL,
		community_id TEXT,
		parent_id TEXT,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX idx_thread_parent ON thread (parent_id)`,
	`CREATE INDEX idx_thread_author ON thread (author_id)`,
	`CREATE TABLE thread_like (
		thread_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (thread_id, user_id)
	)`,
	`CREATE TABLE community_member (
		community_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (community_id, user_id)
	)`,
}

func newTestDB(t *testing.T) db2.Database {
	t.Helper()
	sess, err := sqlite.Open(sqlite.ConnectionURL{
		Database: ":memory:",
		Options:  map[string]string{"mode": "memory"},
	})
	require.NoError(t, err)
	// A single connection keeps every statement on the same in-memory db.
	sess.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sess.Close() })

	for _, stmt := range testSchema {
		_, err := sess.SQL().Exec(stmt)
		require.NoError(t, err)
	}
	return NewWithSession(sess, nil)
}

func seedUser(t *testing.T, store db2.Database, id, username string) {
	t.Helper()
	_, err := store.UpsertUser(context.Background(), &db2.UpsertUser{
		Id:       id,
		Username: username,
		Name:     "User " + username,
		Image:    "https://img.example/" + username + ".png",
	})
	require.NoError(t, err)
}
