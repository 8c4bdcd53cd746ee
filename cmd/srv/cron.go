package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/campusboard/backend/internal/domain/cron"
	"github.com/campusboard/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadDatabase()
	s.loadRepos()

	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := xcontext.Configs(s.ctx)
	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewLiftSuspensionCronJob(s.userRepo, cfg.Cron.LiftSuspensionInterval))

	cronJobManager.Start(ctx)
	return nil
}
