package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"homework_bot/migrations"
)

type command struct {
	name string
	help string
	run  func(context.Context, *goose.Provider) error
}

var commands = []command{
	{"up", "bring the state schema to the newest version", up},
	{"next", "apply only the oldest pending migration", next},
	{"down", "undo the newest applied migration", down},
	{"status", "list every migration and whether it is applied", status},
	{"version", "print the schema version stored in the database", version},
	{"reset", "undo all migrations, dropping the poll state", reset},
}

func main() {
	_ = godotenv.Load()

	dbPath := flag.String("db", envOrDefault("DATABASE_PATH", "./data/homework_bot.db"),
		"SQLite file holding the poll cursor and sent messages (env DATABASE_PATH)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	cmd, ok := lookup(flag.Arg(0))
	if !ok {
		usage()
		log.Fatalf("no such command %q", flag.Arg(0))
	}

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		log.Fatalf("open %s: %v", *dbPath, err)
	}
	provider, err := migrations.NewProvider(db)
	if err != nil {
		_ = db.Close()
		log.Fatal(err)
	}
	defer func() { _ = provider.Close() }()

	if err := cmd.run(context.Background(), provider); err != nil {
		log.Fatalf("%s: %v", cmd.name, err)
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func up(ctx context.Context, p *goose.Provider) error {
	results, err := p.Up(ctx)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("schema is already current")
	}
	for _, r := range results {
		printResult(r)
	}
	return nil
}

func next(ctx context.Context, p *goose.Provider) error {
	r, err := p.UpByOne(ctx)
	if errors.Is(err, goose.ErrNoNextVersion) {
		fmt.Println("nothing pending")
		return nil
	}
	if err != nil {
		return err
	}
	printResult(r)
	return nil
}

func down(ctx context.Context, p *goose.Provider) error {
	r, err := p.Down(ctx)
	if errors.Is(err, goose.ErrNoNextVersion) {
		fmt.Println("nothing to undo")
		return nil
	}
	if err != nil {
		return err
	}
	printResult(r)
	return nil
}

func status(ctx context.Context, p *goose.Provider) error {
	list, err := p.Status(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tFILE\tSTATE\tAPPLIED AT")
	for _, s := range list {
		applied := "-"
		if s.State == goose.StateApplied {
			applied = s.AppliedAt.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Source.Version, s.Source.Path, s.State, applied)
	}
	return w.Flush()
}

func version(ctx context.Context, p *goose.Provider) error {
	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}

func reset(ctx context.Context, p *goose.Provider) error {
	results, err := p.DownTo(ctx, 0)
	if err != nil {
		return err
	}
	for _, r := range results {
		printResult(r)
	}
	return nil
}

func printResult(r *goose.MigrationResult) {
	fmt.Printf("%-4s %s (%s)\n", r.Direction, r.Source.Path, r.Duration.Round(time.Microsecond))
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "migrate manages the schema of the homework bot state database.\n\n")
	fmt.Fprintf(out, "usage: migrate [-db file] <command>\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-8s %s\n", c.name, c.help)
	}
	fmt.Fprintf(out, "\nflags:\n")
	flag.PrintDefaults()
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
