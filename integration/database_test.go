//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestFundcliWithMySQL exercises the classify store against a MySQL backend.
func TestFundcliWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "fundcli",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/fundcli?parseTime=true", host, port.Port())
	env := []string{
		"FUNDCLI_CLASSIFY_BACKEND=mysql",
		"FUNDCLI_CLASSIFY_DB_CONNECT=" + connStr,
	}

	runClassifyStoreFlow(t, env)
}

// TestFundcliWithPostgres exercises the classify store against a PostgreSQL backend.
func TestFundcliWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	env := []string{
		"FUNDCLI_CLASSIFY_BACKEND=postgresql",
		"FUNDCLI_CLASSIFY_DB_CONNECT=" + connStr,
	}

	runClassifyStoreFlow(t, env)
}

// runClassifyStoreFlow drives the unknowns surface end to end: migrate,
// classify, list, status, clear.
func runClassifyStoreFlow(t *testing.T, env []string) {
	t.Helper()

	// Run fundcli unknowns migrate
	_, err := runFundcliCommand(t, env, "unknowns", "migrate")
	require.NoError(t, err)

	// Record a judgment; 'ignored' also lands on the exception list
	_, err = runFundcliCommand(t, env, "unknowns", "classify", "sometool", "ignored")
	require.NoError(t, err)

	// Run fundcli unknowns list
	output, err := runFundcliCommand(t, env, "unknowns", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "sometool")

	// Run fundcli unknowns status
	output, err = runFundcliCommand(t, env, "unknowns", "status")
	require.NoError(t, err)
	assert.Contains(t, output, "Total Records: 1")

	// Run fundcli unknowns clear
	_, err = runFundcliCommand(t, env, "unknowns", "clear")
	require.NoError(t, err)

	// The store is recreated empty on the next open
	output, err = runFundcliCommand(t, env, "unknowns", "status")
	require.NoError(t, err)
	assert.Contains(t, output, "Total Records: 0")
}
