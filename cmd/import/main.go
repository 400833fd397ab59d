// Command import replaces the stored ledger with the contents of a CSV
// export, creating people for contacts seen for the first time.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/extrato-backend/internal/app"
)

func main() {
	file := flag.String("file", "", "path to the ledger CSV export")
	dryRun := flag.Bool("dry-run", false, "parse and report counts without writing")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := app.RunImport(ctx, app.ImportOptions{
		File:   *file,
		DryRun: *dryRun,
		Out:    os.Stdout,
	})
	if err != nil {
		log.Fatalf("import: %v", err)
	}
}
