package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/technopolitica/open-users/internal/db"
)

var connectionURL = flag.String("db-url", "", "URL-formatted connection string to the DB to operate upon")

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s -db-url URL <migrate -to VERSION | status>\n", os.Args[0])
	flag.PrintDefaults()
}

func migrate(ctx context.Context, args []string) error {
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	version := migrateCmd.String("to", "", fmt.Sprintf("version to which the database should be migrated. May specify %q to migrate to the latest version.", db.LatestVersion))
	migrateCmd.Parse(args)

	if *version == "" {
		migrateCmd.Usage()
		return fmt.Errorf("missing required parameter -to")
	}
	return db.MigrateTo(ctx, *connectionURL, *version)
}

func main() {
	ctx := context.Background()

	flag.Usage = usage
	flag.Parse()

	if *connectionURL == "" {
		fmt.Print("missing required -db-url param\n")
		flag.Usage()
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Print("expected a subcommand\n")
		flag.Usage()
		os.Exit(1)
	}

	var err error
	switch command := args[0]; command {
	case "migrate":
		err = migrate(ctx, args[1:])
	case "status":
		err = db.PrintStatus(*connectionURL)
	default:
		fmt.Printf("unknown subcommand \"%s\"\n", command)
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("failed to run %s: %s\n", args[0], err)
	}
}
