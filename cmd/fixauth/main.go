package main

import (
	"flag"
	"os"

	"github.com/bebrafun/marketmigrate/internal/logger"
	"github.com/bebrafun/marketmigrate/internal/patch"
)

const (
	exitOK   = 0
	exitFail = 1
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("fixauth", flag.ContinueOnError)
	file := flags.String("file", "src/services/blockchainService.ts", "Frontend service file to patch")
	jsonOut := flags.Bool("json", false, "JSON logs")
	if err := flags.Parse(args); err != nil {
		return exitFail
	}

	log := logger.New(*jsonOut)
	changed, err := patch.File(*file)
	if err != nil {
		log.Error("patch failed", map[string]any{"file": *file, "error": err.Error()})
		return exitFail
	}
	if !changed {
		log.Info("already patched, nothing to do", map[string]any{"file": *file})
		return exitOK
	}
	log.Info("auth header injected", map[string]any{"file": *file})
	return exitOK
}
