package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "CampusBoard"
	s.app.Usage = "University bulletin board backend"
	s.app.Before = s.setup
	s.app.After = s.teardown
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis.`,
		},
		{
			Action:      s.startNotification,
			Name:        "notification",
			Usage:       "Start service notification",
			Category:    "Worker",
			Description: `Consumes notification events and pushes them to websocket clients.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Category:    "Worker",
			Description: `Runs the periodic maintenance jobs.`,
		},
		{
			Action:   s.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate databases",
			Category: "Tool",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "skip-scylla",
					Usage: "only migrate the relational database",
				},
			},
			Description: `Creates or updates the MySQL tables and the ScyllaDB schema.`,
		},
	}
}
