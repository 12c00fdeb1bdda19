package main

import (
	authrepository "carrental/internal/auth/repository"
	mongoMigration "carrental/internal/migrations/mongo"
	"carrental/internal/migrations/seed"
	"carrental/internal/reservations/repository"
	"carrental/pkg/config"
	"carrental/pkg/model"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

const JobName = "mongo-migration"

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "Prepare the reservations database and seed fleet and user data",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   120 * time.Second,
				EnvVars: []string{"MIGRATE_TIMEOUT"},
				Usage:   "Overall timeout of the command",
			},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			seedCarCommand(),
			seedUserCommand(),
		},
		DefaultCommand: "migrate",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withConfig connects to Mongo, runs fn and disconnects.
func withConfig(c *cli.Context, fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	return fn(ctx, cfg)
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create collections, validators and indexes",
		Action: func(c *cli.Context) error {
			return withConfig(c, func(ctx context.Context, cfg *config.Config) error {
				db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
				if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				cfg.Log.Info("Migration completed successfully")
				return nil
			})
		},
	}
}

func seedCarCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed-car",
		Usage: "Add a car to the fleet",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "id", Required: true, Usage: "Car id"},
			&cli.StringFlag{Name: "model", Usage: "Car model"},
			&cli.StringFlag{Name: "plate", Usage: "Registration plate"},
		},
		Action: func(c *cli.Context) error {
			return withConfig(c, func(ctx context.Context, cfg *config.Config) error {
				car := &model.Car{
					ID:    c.Int64("id"),
					Model: c.String("model"),
					Plate: c.String("plate"),
				}
				if err := seed.Car(ctx, repository.NewMongoCarRepository(cfg), car); err != nil {
					return fmt.Errorf("could not seed car %d: %w", car.ID, err)
				}
				cfg.Log.Info("Car created", "car_id", car.ID)
				return nil
			})
		},
	}
}

func seedUserCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed-user",
		Usage: "Create a user account",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "id", Required: true, Usage: "User id"},
			&cli.StringFlag{Name: "login", Required: true, Usage: "Login name"},
			&cli.StringFlag{
				Name:     "password",
				Required: true,
				EnvVars:  []string{"SEED_USER_PASSWORD"},
				Usage:    "Plain text password, hashed with bcrypt before storage",
			},
			&cli.StringSliceFlag{Name: "role", Usage: "Role, repeatable (ROLE_USER, ROLE_ADMIN)"},
		},
		Action: func(c *cli.Context) error {
			return withConfig(c, func(ctx context.Context, cfg *config.Config) error {
				users := authrepository.NewMongoUserRepository(cfg)
				if err := seed.User(ctx, users, c.Int64("id"), c.String("login"), c.String("password"), c.StringSlice("role")); err != nil {
					return fmt.Errorf("could not seed user: %w", err)
				}
				cfg.Log.Info("User created", "user_id", c.Int64("id"), "login", c.String("login"))
				return nil
			})
		},
	}
}
