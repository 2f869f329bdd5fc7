package database

import (
	"net/url"
	"testing"

	"hospital-management/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationURL_EscapesCredentials(t *testing.T) {
	raw := MigrationURL(config.DBConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "hms",
		Password: "p@ss:w/rd",
		Name:     "hospital",
		SSLMode:  "require",
	})

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "pgx5", u.Scheme)
	assert.Equal(t, "db.internal:5433", u.Host)
	assert.Equal(t, "/hospital", u.Path)
	assert.Equal(t, "require", u.Query().Get("sslmode"))

	password, ok := u.User.Password()
	require.True(t, ok)
	assert.Equal(t, "hms", u.User.Username())
	assert.Equal(t, "p@ss:w/rd", password)
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DBConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "hms",
		Password: "secret",
		Name:     "hospital",
		SSLMode:  "disable",
	}, "Asia/Jakarta")

	assert.Equal(t, "host=localhost user=hms password=secret dbname=hospital port=5432 sslmode=disable TimeZone=Asia/Jakarta", dsn)
}
