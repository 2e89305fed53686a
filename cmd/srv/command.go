package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	idFlag := &cli.StringFlag{Name: "id", Usage: "drawing id", Required: true}

	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "fittrack"
	app.Usage = "Points ledger, ticket drawings and leaderboards"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "path of the TOML config file",
			EnvVars: []string{"FITTRACK_CONFIG"},
		},
		&cli.Int64Flag{
			Name:    "node-id",
			Usage:   "snowflake node of this process, unique per running instance",
			EnvVars: []string{"FITTRACK_NODE_ID"},
		},
	}
	app.Before = s.setup
	app.After = s.teardown
	app.Commands = []*cli.Command{
		{
			Action:      s.startWorker,
			Name:        "worker",
			Usage:       "Start the scheduled jobs",
			Category:    "Worker",
			Description: `Refreshes leaderboards, advances drawings through their lifecycle and forfeits silent winners. Also serves metrics.`,
		},
		{
			Action:   s.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate the database schema",
			Category: "Database",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "auto", Usage: "derive the schema from the entities instead of the SQL files"},
			},
		},
		{
			Name:     "drawing",
			Usage:    "Operate a drawing by hand",
			Category: "Admin",
			Subcommands: []*cli.Command{
				{
					Action: s.openDrawing,
					Name:   "open",
					Usage:  "Start ticket sales of a scheduled drawing",
					Flags:  []cli.Flag{idFlag},
				},
				{
					Action: s.closeDrawing,
					Name:   "close",
					Usage:  "Stop ticket sales of an open drawing",
					Flags:  []cli.Flag{idFlag},
				},
				{
					Action: s.executeDrawing,
					Name:   "execute",
					Usage:  "Select the winners of a closed drawing",
					Flags:  []cli.Flag{idFlag},
				},
				{
					Action: s.verifyDrawing,
					Name:   "verify",
					Usage:  "Replay the seed of a completed drawing and compare the winners",
					Flags:  []cli.Flag{idFlag},
				},
			},
		},
		{
			Name:     "points",
			Usage:    "Correct point balances",
			Category: "Admin",
			Subcommands: []*cli.Command{
				{
					Action: s.adjustPoints,
					Name:   "adjust",
					Usage:  "Credit or debit a user with an audited adjustment",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "user", Usage: "user id", Required: true},
						&cli.Int64Flag{Name: "amount", Usage: "signed number of points", Required: true},
						&cli.StringFlag{Name: "reason", Usage: "shown in the ledger", Required: true},
						&cli.StringFlag{Name: "admin", Usage: "id of the operator", Required: true},
					},
				},
			},
		},
		{
			Name:     "profile",
			Usage:    "Inspect fitness profiles",
			Category: "Admin",
			Subcommands: []*cli.Command{
				{
					Action: s.listProfiles,
					Name:   "list",
					Usage:  "Page through the members of a tier",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "tier", Usage: "tier code", Required: true},
						&cli.IntFlag{Name: "offset", Usage: "number of members to skip"},
						&cli.IntFlag{Name: "limit", Usage: "page size", Value: 50},
					},
				},
				{
					Action: s.countProfiles,
					Name:   "count",
					Usage:  "Count profiles matching every given attribute",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "tier", Usage: "tier code"},
						&cli.StringFlag{Name: "sex", Usage: "biological sex"},
						&cli.StringFlag{Name: "age", Usage: "age bracket"},
						&cli.StringFlag{Name: "level", Usage: "fitness level"},
					},
				},
			},
		},
		{
			Name:     "leaderboard",
			Usage:    "Manage cached leaderboards",
			Category: "Admin",
			Subcommands: []*cli.Command{
				{
					Action: s.refreshLeaderboard,
					Name:   "refresh",
					Usage:  "Recompute and cache every board",
				},
				{
					Action: s.invalidateLeaderboard,
					Name:   "invalidate",
					Usage:  "Drop cached boards",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "period", Usage: "daily, weekly, monthly or all_time; empty for all"},
						&cli.StringFlag{Name: "tier", Usage: "tier code or global; empty for all"},
					},
				},
			},
		},
	}

	s.app = app
}
