package testutils

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresConfig describes the throwaway Postgres server the acceptance suite
// runs against when no -db-url is given.
type PostgresConfig struct {
	Image    string
	Database string
	User     string
	Password string
}

var DefaultPostgresConfig = PostgresConfig{
	Image:    "docker.io/postgres:15-alpine",
	Database: "open_users",
	User:     "open_users",
	Password: "open_users",
}

func (config PostgresConfig) connectionString(host string, port nat.Port) string {
	return connectionString(pgconn.Config{
		Host:     host,
		Port:     uint16(port.Int()),
		Database: config.Database,
		User:     config.User,
		Password: config.Password,
	})
}

type DBServer struct {
	container        *postgres.PostgresContainer
	Database         string
	ConnectionString string
}

const postgresPort = nat.Port("5432/tcp")

// Postgres logs this once during init and again when it is really up.
const postgresReadyLog = "database system is ready to accept connections"

const defaultStartupTimeout = 15 * time.Minute

func StartDBServer(ctx context.Context, config PostgresConfig) (server DBServer, err error) {
	timeout := defaultStartupTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage(config.Image),
		postgres.WithDatabase(config.Database),
		postgres.WithUsername(config.User),
		postgres.WithPassword(config.Password),
		testcontainers.WithWaitStrategyAndDeadline(timeout, wait.ForAll(
			wait.ForLog(postgresReadyLog).WithOccurrence(2),
			wait.ForSQL(postgresPort, "pgx", config.connectionString),
		)),
	)
	if err != nil {
		err = fmt.Errorf("failed to start %s: %w", config.Image, err)
		return
	}

	host, err := container.Host(ctx)
	if err != nil {
		err = fmt.Errorf("failed to determine database host: %w", err)
		return
	}
	port, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		err = fmt.Errorf("failed to determine database port: %w", err)
		return
	}

	server = DBServer{
		container:        container,
		Database:         config.Database,
		ConnectionString: config.connectionString(host, port),
	}
	return
}

func (server DBServer) Terminate(ctx context.Context) error {
	return server.container.Terminate(ctx)
}
