// Command applyctl runs one-off maintenance tasks against the portal
// database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/applyhub/applyhub/db"
	"github.com/applyhub/applyhub/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const usage = `usage: applyctl <command> [flags]

commands:
  migrate             create or update the schema
  create-admin        add an admin account (-name, -email, -password)
  stats               print applicant statistics
  clear-db            delete all applications, emails and courses (-yes)
  migrate-residence   split the legacy residence column into its parts
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	_ = godotenv.Load()

	if err := run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	var (
		name     = fs.String("name", "Administrator", "admin display name")
		email    = fs.String("email", "", "admin email")
		password = fs.String("password", "", "admin password")
		yes      = fs.Bool("yes", false, "confirm destructive commands")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch command {
	case "migrate", "create-admin", "stats", "clear-db", "migrate-residence":
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}
	gdb, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	switch command {
	case "migrate":
		return migrate(gdb)
	case "create-admin":
		return createAdmin(ctx, gdb, *name, *email, *password)
	case "stats":
		return printStats(ctx, gdb, os.Stdout)
	case "clear-db":
		if !*yes {
			return fmt.Errorf("clear-db deletes every application, email and course; rerun with -yes")
		}
		return clearDatabase(ctx, gdb)
	default:
		return migrateResidence(ctx, gdb)
	}
}

func migrate(gdb *gorm.DB) error {
	if err := db.MigrateDatabase(gdb); err != nil {
		return err
	}
	color.Green("Schema is up to date")
	return nil
}
