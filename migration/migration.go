package migration

import (
	"context"
	"embed"
	"errors"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/xcontext"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/cassandra"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/scylladb/gocqlx/v2"
)

//go:embed cql/*.cql
var cqlFS embed.FS

// MigrateMySQL creates the relational tables and adds missing columns and
// indexes. It never drops anything.
func MigrateMySQL(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}

// MigrateScyllaDB applies the embedded CQL files to the configured keyspace.
// The keyspace must already exist.
func MigrateScyllaDB(ctx context.Context, session gocqlx.Session) error {
	src, err := newCQLSource()
	if err != nil {
		return err
	}

	driver, err := cassandra.WithInstance(session.Session, &cassandra.Config{
		KeyspaceName:          xcontext.Configs(ctx).ScyllaDB.KeySpace,
		MultiStatementEnabled: true,
	})
	if err != nil {
		return err
	}

	// Closing m would close the shared session too, only the source is
	// released here.
	defer src.Close()

	m, err := migrate.NewWithInstance("iofs", src, "cassandra", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	xcontext.Logger(ctx).Infof("ScyllaDB schema is up to date")
	return nil
}

func newCQLSource() (source.Driver, error) {
	return iofs.New(cqlFS, "cql")
}
