// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// subscriptionsCommand handles bulk subscription updates
func subscriptionsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "subscriptions",
		Aliases: []string{"subs"},
		Usage:   "Newsletter subscription operations",
		Commands: []*cli.Command{
			{
				Name:  "update",
				Usage: "Bulk-update subscriptions from a CSV of (email_id, name, subscribed) rows",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "file",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "journal",
						Usage: "Path to a SQLite run journal to record this run in",
					},
				},
				Action: r.SubscriptionsUpdate,
			},
		},
	}
}

// contactsCommand handles contact-level operations
func contactsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "contacts",
		Usage: "Contact operations",
		Commands: []*cli.Command{
			{
				Name:  "delete",
				Usage: "Delete a single contact or a list of contacts by primary email",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "email",
						Usage: "Primary email of the contact to delete",
					},
					&cli.StringFlag{
						Name:  "email-file",
						Usage: "Path to a newline-delimited file of primary emails",
					},
					&cli.FloatFlag{
						Name:  "rps",
						Usage: "Maximum delete requests per second (0 = unthrottled)",
					},
				},
				Action: r.ContactsDelete,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "token",
				Usage: "Exchange client credentials for a bearer token and print the response",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.AuthToken,
			},
			{
				Name:   "status",
				Usage:  "Check API health (calls /__heartbeat__)",
				Action: r.AuthStatus,
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the CTMS API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Authenticated GET, prints the JSON response",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:   "version",
				Usage:  "Print the deployed API version (calls /__version__)",
				Action: r.APIVersion,
			},
		},
	}
}

// journalCommand inspects the local run journal
func journalCommand(r *Runner) *cli.Command {
	dbFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:  "db",
			Usage: "Path to the SQLite run journal",
		}
	}

	return &cli.Command{
		Name:  "journal",
		Usage: "Inspect recorded subscription-update runs",
		Commands: []*cli.Command{
			{
				Name:   "runs",
				Usage:  "List recorded runs, most recent first",
				Flags:  []cli.Flag{dbFlag()},
				Action: r.JournalRuns,
			},
			{
				Name:  "show",
				Usage: "Show the per-contact entries of one run",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "run-id",
					},
				},
				Flags: []cli.Flag{
					dbFlag(),
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "Output entries as CSV",
					},
				},
				Action: r.JournalShow,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the journal.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write an example config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "journal",
				Usage: "Initialize the run journal database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "db",
						Usage: "Path to the SQLite run journal",
					},
				},
				Action: r.SetupJournal,
			},
		},
	}
}
