// Package pgtest starts a disposable PostgreSQL container with the marketplace schema for
// integration suites.
package pgtest

import (
	"context"
	"time"

	"freightdesk/internal/adapters/out/postgres/migrations"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is a running container plus an open gorm connection to it.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
	URL       string
}

// Start runs postgres:15-alpine, applies the migrations and opens gorm.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	if err = migrations.Up(connStr); err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}

	return &Database{Container: container, DB: db, URL: connStr}, nil
}

// Truncate empties every marketplace table.
func (d *Database) Truncate() error {
	return d.DB.Exec(`TRUNCATE TABLE notifications, company_ratings, documents, quote_amendments,
		order_status_history, order_forwarders, companies, company_members, orders, quotes CASCADE`).Error
}

// Terminate stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

// Seed inserts a company and one member and returns their identifiers.
func (d *Database) Seed(companyType, role string) (companyID, userID, memberID string, err error) {
	err = d.DB.Raw(`WITH c AS (
			INSERT INTO companies (id, name, type) VALUES (gen_random_uuid(), 'Acme ' || substr(md5(random()::text), 1, 6), ?)
			RETURNING id
		), m AS (
			INSERT INTO company_members (id, company_id, user_id, role)
			SELECT gen_random_uuid(), c.id, gen_random_uuid(), ? FROM c
			RETURNING company_id, user_id, id
		)
		SELECT company_id::text, user_id::text, id::text FROM m`, companyType, role).
		Row().Scan(&companyID, &userID, &memberID)
	return companyID, userID, memberID, err
}
