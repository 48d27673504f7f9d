package main

import (
	"fmt"
	"os"

	"blog-api/config"
	"blog-api/server"

	_ "github.com/mattn/go-sqlite3"
	"github.com/umakantv/go-utils/db/migrations"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "blog-api",
		Usage: "Users and posts REST API with personal access tokens",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				EnvVars: []string{"BLOG_CONFIG"},
			},
		},
		Action: start,
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Run migrations and serve the API",
				Action: start,
			},
			{
				Name:  "create-migration",
				Usage: "Create an empty timestamped .sql migration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Migration name (alphanum+underscore only)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Target directory for the new .sql file",
						Value: config.DefaultMigrationsDir,
					},
				},
				Action: func(c *cli.Context) error {
					name := c.String("name")
					dir := c.String("dir")
					migrations.CreateMigration(&name, &dir)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func start(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	return server.StartServer(cfg)
}
