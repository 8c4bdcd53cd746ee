package main

import (
	"github.com/campusboard/backend/migration"
	"github.com/campusboard/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	s.loadDatabase()
	if err := migration.MigrateMySQL(s.ctx); err != nil {
		return err
	}
	xcontext.Logger(s.ctx).Infof("Migrate mysql successful")

	if cctx.Bool("skip-scylla") {
		return nil
	}

	s.loadScyllaDB()
	return migration.MigrateScyllaDB(s.ctx, s.scyllaDBSession)
}
