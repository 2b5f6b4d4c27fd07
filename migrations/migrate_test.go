package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := embedMigrations.ReadDir(".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	data, err := embedMigrations.ReadFile("00001_create_users_table.sql")
	require.NoError(t, err)

	sql := string(data)
	assert.Contains(t, sql, "CREATE TABLE users")
	assert.Contains(t, sql, "username TEXT UNIQUE NOT NULL")
	assert.Contains(t, sql, "-- +goose Down")
}
