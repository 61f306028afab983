package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/teacher-admin-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5432, User: "admin", Password: "secret", Name: "teachers", SSLMode: "disable"})
	assert.Equal(t, "host=db port=5432 user=admin password=secret dbname=teachers sslmode=disable", dsn)
}
