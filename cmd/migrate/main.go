package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bebrafun/marketmigrate/internal/checksum"
	"github.com/bebrafun/marketmigrate/internal/config"
	"github.com/bebrafun/marketmigrate/internal/db"
	"github.com/bebrafun/marketmigrate/internal/logger"
	"github.com/bebrafun/marketmigrate/internal/migrator"
)

const (
	exitOK      = 0
	exitFail    = 1
	exitPayload = 2
	exitConnect = 3
	exitExec    = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("migrate", flag.ContinueOnError)
	conf := flags.String("config", "", "Optional YAML config path")
	file := flags.String("file", "", "Migration payload: .sql file or migrations directory (or MIGRATION_FILE)")
	wallet := flags.String("wallet", "", "Admin wallet address to verify (or ADMIN_WALLET)")
	jsonOut := flags.Bool("json", false, "JSON logs")
	verbose := flags.Bool("verbose", false, "Print the payload (comments stripped) before executing")
	if err := flags.Parse(args); err != nil {
		return exitFail
	}

	cfg, err := config.LoadYAML(*conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config %s: %v\n", *conf, err)
		return exitFail
	}
	cfg = config.MergeEnv(cfg)
	if *file != "" {
		cfg.File = *file
	}
	if *wallet != "" {
		cfg.AdminWallet = *wallet
	}
	cfg.JSON = *jsonOut

	log := logger.New(cfg.JSON)

	log.Info("reading migration payload", map[string]any{"path": cfg.File})
	payload, err := migrator.LoadPayload(cfg.File)
	if err != nil {
		log.Error("payload load failed", map[string]any{"error": err.Error()})
		if errors.Is(err, migrator.ErrPayloadMissing) {
			return exitPayload
		}
		return exitFail
	}
	log.Info("payload loaded", map[string]any{
		"path":     payload.Path,
		"bytes":    len(payload.SQL),
		"checksum": checksum.Short(payload.Checksum),
	})
	if *verbose && !cfg.JSON {
		fmt.Println(payload.Preview())
	}

	ctx := context.Background()
	log.Info("connecting", map[string]any{"host": cfg.Host, "port": cfg.Port, "dbname": cfg.DBName})
	database, err := db.Connect(ctx, cfg.DSN())
	if err != nil {
		log.Error("connect failed", map[string]any{"error": err.Error()})
		return exitConnect
	}
	defer database.Close()

	runner := migrator.NewRunner(database, cfg.AdminWallet)

	log.Info("executing migration", map[string]any{"path": payload.Path})
	if err := runner.Execute(ctx, payload); err != nil {
		log.Error("execution failed", map[string]any{"error": err.Error()})
		return exitExec
	}
	log.Info("migration executed", nil)

	report, err := runner.Verify(ctx)
	if err != nil {
		log.Error("verification failed", map[string]any{"error": err.Error()})
		return exitExec
	}
	printReport(report, cfg.AdminWallet, log)
	log.Info("done", nil)
	return exitOK
}

func printReport(rep *migrator.Report, wallet string, log *logger.Logger) {
	if log.JSONEnabled() {
		enc := json.NewEncoder(os.Stdout)
		_ = enc.Encode(rep)
		if rep.Admin == nil {
			log.Warn("admin user not found", map[string]any{"wallet": wallet})
		}
		return
	}

	banner := strings.Repeat("=", 60)
	fmt.Println(banner)
	fmt.Println("Duels by status:")
	printCounts(rep.Duels)
	fmt.Println("Markets by status:")
	printCounts(rep.Markets)
	fmt.Println("Admin user:")
	if rep.Admin != nil {
		fmt.Printf("  id:      %d\n", rep.Admin.ID)
		fmt.Printf("  role:    %s\n", rep.Admin.Role)
		fmt.Printf("  wallet:  %s\n", rep.Admin.WalletAddress)
		fmt.Printf("  created: %s\n", rep.Admin.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("  not found")
		log.Warn("admin user not found", map[string]any{"wallet": wallet})
	}
	fmt.Println(banner)
}

func printCounts(counts []migrator.StatusCount) {
	if len(counts) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, sc := range counts {
		fmt.Printf("  %s: %d\n", sc.Status, sc.Count)
	}
}
