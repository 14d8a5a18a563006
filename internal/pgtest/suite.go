// Package pgtest starts a throwaway PostgreSQL container with the schema applied, for
// repository integration tests.
package pgtest

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/kuma-mall/admin-backend/internal/database"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type BaseSuite struct {
	suite.Suite
	PgContainer *postgres.PostgresContainer
	DB          *sql.DB
	Ctx         context.Context
}

// SetupInfrastructure skips the suite under -short, otherwise starts postgres and runs
// the embedded migrations against it.
func (s *BaseSuite) SetupInfrastructure() {
	if testing.Short() {
		s.T().Skip("skipping postgres integration suite in short mode")
	}
	s.Ctx = context.Background()

	var err error
	s.PgContainer, err = postgres.Run(
		s.Ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("kuma_test"),
		postgres.WithUsername("kuma"),
		postgres.WithPassword("kuma"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)

	connStr, err := s.PgContainer.ConnectionString(s.Ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.Require().NoError(database.MigrateUp(connStr))

	s.DB, err = database.Open(s.Ctx, connStr, database.Options{MaxOpenConns: 5})
	s.Require().NoError(err)
}

func (s *BaseSuite) TearDownInfrastructure() {
	if s.DB != nil {
		s.DB.Close()
	}
	if s.PgContainer != nil {
		if err := s.PgContainer.Terminate(s.Ctx); err != nil {
			log.Printf("failed to terminate postgres container: %v", err)
		}
	}
}

func (s *BaseSuite) TruncateTables(tables ...string) {
	_, err := s.DB.ExecContext(s.Ctx, fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", ")))
	s.Require().NoError(err)
}

// CountRows returns the number of rows in table.
func (s *BaseSuite) CountRows(table string) int {
	var n int
	s.Require().NoError(s.DB.QueryRowContext(s.Ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
