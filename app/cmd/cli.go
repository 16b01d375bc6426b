package cmd

import (
	"context"
	"log"
	"os"

	"github.com/cherryshop/cherryshop-api/app/configs"
	"github.com/cherryshop/cherryshop-api/app/db/seeders"
	"github.com/cherryshop/cherryshop-api/app/models/migrations"
	"github.com/cherryshop/cherryshop-api/app/repositories"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func RunCli() {
	cmd := &cli.Command{
		Name:   "cherryshop",
		Usage:  "Catalog and account API",
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Migrate, seed and start the HTTP server",
				Action: serveAction,
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDatabase(func(env configs.ENV, logger *zap.Logger, db *gorm.DB) error {
						if err := migrations.AutoMigrate(db); err != nil {
							return err
						}
						logger.Info("Migration complete")
						return nil
					})
				},
			},
			{
				Name:  "seed",
				Usage: "Create the default roles and bootstrap accounts",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDatabase(func(env configs.ENV, logger *zap.Logger, db *gorm.DB) error {
						if err := migrations.AutoMigrate(db); err != nil {
							return err
						}
						return seed(ctx, env, logger, db)
					})
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate a new JWT signing secret for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.GenerateAndPrintSecret(os.Stdout)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func withDatabase(fn func(env configs.ENV, logger *zap.Logger, db *gorm.DB) error) error {
	env, err := configs.LoadEnv()
	if err != nil {
		return err
	}
	logger, err := configs.NewLogger(env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := configs.OpenConnection(env, logger)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return fn(env, logger, db)
}

func seed(ctx context.Context, env configs.ENV, logger *zap.Logger, db *gorm.DB) error {
	return seeders.Seed(ctx,
		repositories.NewRoleRepository(db),
		repositories.NewUserRepository(db),
		env.SeedPassword,
		logger,
	)
}
