package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/employee-directory/internal/media"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run background maintenance jobs",
	Long:  `Run maintenance jobs that complement the HTTP server, such as releasing orphaned media files.`,
}

var mediaSweepCmd = &cobra.Command{
	Use:   "media-sweep",
	Short: "Release media files no image refers to",
	Long: `Walk the media root and release every file that no employee image row refers to.
Deletions are best effort, so files can outlive their rows; this job catches them.`,
	Run: func(cmd *cobra.Command, args []string) {
		runMediaSweep()
	},
}

var sweepDryRun bool

func runMediaSweep() {
	app, err := newApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	lg := app.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lg.Info("starting media sweep", "root", app.Store.Root(), "dry_run", sweepDryRun)

	result, err := media.Sweep(ctx, app.Store, app.EmployeeRepo, sweepDryRun, lg)
	if err != nil {
		lg.Error("media sweep failed", "error", err)
		os.Exit(1)
	}

	lg.Info("media sweep complete",
		"scanned", result.Scanned,
		"orphans", len(result.Orphans),
		"released", result.Released,
		"failed", result.Failed)
}

func init() {
	mediaSweepCmd.Flags().BoolVar(&sweepDryRun, "dry-run", false, "Only report orphaned files")

	workerCmd.AddCommand(mediaSweepCmd)

	rootCmd.AddCommand(workerCmd)
}
